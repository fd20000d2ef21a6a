// Package models provides mesh data and built-in procedural meshes.
package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Mesh is an indexed triangle list with optional per-vertex UVs and texture.
// Faces are wound clockwise when seen from outside.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Indices  []uint32 // Three per triangle, into Vertices
	UVs      []math3d.Vec2
	Texture  *render.Texture

	// Bounding box (see CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddTriangle appends a triangle by vertex index.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// AddQuad appends quad a-b-c-d as triangles (a, b, c) and (a, c, d).
func (m *Mesh) AddQuad(a, b, c, d uint32) {
	m.Indices = append(m.Indices, a, b, c, a, c, d)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// GetBounds returns the bounding box corners.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// Transform applies a matrix to every vertex and refreshes the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.MulPoint(v)
	}
	m.CalculateBounds()
}

// Clone returns a deep copy. The texture is shared.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = append([]math3d.Vec3(nil), m.Vertices...)
	c.Indices = append([]uint32(nil), m.Indices...)
	c.UVs = append([]math3d.Vec2(nil), m.UVs...)
	return &c
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of complete triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// GetVertex returns the position of vertex i.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// GetFace returns the vertex indices of triangle i.
func (m *Mesh) GetFace(i int) [3]int {
	return [3]int{
		int(m.Indices[i*3]),
		int(m.Indices[i*3+1]),
		int(m.Indices[i*3+2]),
	}
}

// HasUVs reports whether there is exactly one UV per vertex.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0 && len(m.UVs) == len(m.Vertices)
}

// GetUV returns the texture coordinate of vertex i.
func (m *Mesh) GetUV(i int) math3d.Vec2 {
	return m.UVs[i]
}

// GetTexture returns the mesh texture, or nil.
func (m *Mesh) GetTexture() *render.Texture {
	return m.Texture
}

var _ render.TexturedMeshRenderer = (*Mesh)(nil)
