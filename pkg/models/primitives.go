package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// cubeCorners are the eight corners of a cube centered on the origin with
// half-extent 1.
var cubeCorners = [8]math3d.Vec3{
	{X: -1, Y: -1, Z: -1}, // 0
	{X: 1, Y: -1, Z: -1},  // 1
	{X: 1, Y: 1, Z: -1},   // 2
	{X: -1, Y: 1, Z: -1},  // 3
	{X: -1, Y: -1, Z: 1},  // 4
	{X: 1, Y: -1, Z: 1},   // 5
	{X: 1, Y: 1, Z: 1},    // 6
	{X: -1, Y: 1, Z: 1},   // 7
}

// cubeFaces lists each face as a quad, clockwise seen from outside, starting
// at the corner that maps to UV (0, 1).
var cubeFaces = [6][4]uint32{
	{0, 3, 2, 1}, // -Z
	{5, 6, 7, 4}, // +Z
	{4, 7, 3, 0}, // -X
	{1, 2, 6, 5}, // +X
	{3, 7, 6, 2}, // +Y
	{4, 0, 1, 5}, // -Y
}

// quadUVs match the corner order of cubeFaces.
var quadUVs = [4]math3d.Vec2{
	{X: 0, Y: 1},
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
}

// NewCube creates a cube of the given edge length sharing its eight corners
// between faces.
func NewCube(size float64) *Mesh {
	m := NewMesh("cube")
	half := size / 2
	for _, c := range cubeCorners {
		m.Vertices = append(m.Vertices, c.Scale(half))
	}
	for _, f := range cubeFaces {
		m.AddQuad(f[0], f[1], f[2], f[3])
	}
	m.CalculateBounds()
	return m
}

// NewTexturedCube creates a cube with four vertices per face so every face
// maps the whole texture.
func NewTexturedCube(size float64, tex *render.Texture) *Mesh {
	m := NewMesh("textured cube")
	m.Texture = tex
	half := size / 2
	for _, f := range cubeFaces {
		base := uint32(len(m.Vertices))
		for i, corner := range f {
			m.Vertices = append(m.Vertices, cubeCorners[corner].Scale(half))
			m.UVs = append(m.UVs, quadUVs[i])
		}
		m.AddQuad(base, base+1, base+2, base+3)
	}
	m.CalculateBounds()
	return m
}

// NewPlane creates a square ground plane at height y, facing +Y, split into
// divisions×divisions quads with UVs spanning the whole plane.
func NewPlane(size float64, divisions int, y float64, tex *render.Texture) *Mesh {
	m := NewMesh("plane")
	m.Texture = tex
	divisions = max(divisions, 1)
	half := size / 2
	step := size / float64(divisions)

	for row := 0; row <= divisions; row++ {
		for col := 0; col <= divisions; col++ {
			m.Vertices = append(m.Vertices, math3d.V3(
				-half+float64(col)*step,
				y,
				-half+float64(row)*step,
			))
			m.UVs = append(m.UVs, math3d.V2(
				float64(col)/float64(divisions),
				1-float64(row)/float64(divisions),
			))
		}
	}

	stride := uint32(divisions + 1)
	for row := range uint32(divisions) {
		for col := range uint32(divisions) {
			a := row*stride + col // near-left
			b := a + stride       // far-left
			m.AddQuad(a, b, b+1, a+1)
		}
	}
	m.CalculateBounds()
	return m
}
