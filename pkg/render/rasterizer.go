package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// MeshRenderer is the mesh view the rasterizer draws from. It lives here
// rather than in models so render does not import models.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
}

// TexturedMeshRenderer adds per-vertex UVs and a texture.
type TexturedMeshRenderer interface {
	MeshRenderer
	HasUVs() bool
	GetUV(i int) math3d.Vec2
	GetTexture() *Texture
}

// FrameStats counts triangles for one frame.
type FrameStats struct {
	Submitted int // Triangles handed to a mesh renderer
	Behind    int // Skipped because every vertex is behind the eye
	Culled    int // Skipped as back-facing or degenerate on screen
	Drawn     int // Passed on to a fill or line primitive
}

// screenVertex is a vertex after the full pipeline.
type screenVertex struct {
	pos math3d.Vec3 // Pixel X, Y and depth
	w   float64     // Clip-space w
}

// Rasterizer draws meshes into a pair of render targets through a pipeline.
type Rasterizer struct {
	targets  *RenderTargets
	pipeline *Pipeline

	// CullBackfaces skips triangles that are counter-clockwise on screen.
	CullBackfaces bool
	// Palette colors faces in flat mode, cycling per triangle.
	Palette []Color
	Stats   FrameStats

	screen []screenVertex
}

// NewRasterizer creates a rasterizer with back-face culling enabled.
func NewRasterizer(targets *RenderTargets, pipeline *Pipeline) *Rasterizer {
	return &Rasterizer{
		targets:       targets,
		pipeline:      pipeline,
		CullBackfaces: true,
		Palette:       DefaultPalette,
	}
}

// Targets returns the render targets.
func (r *Rasterizer) Targets() *RenderTargets { return r.targets }

// Pipeline returns the current pipeline.
func (r *Rasterizer) Pipeline() *Pipeline { return r.pipeline }

// SetPipeline swaps in the matrices for a new frame.
func (r *Rasterizer) SetPipeline(p *Pipeline) { r.pipeline = p }

// SetTargets swaps the render targets (after a resize).
func (r *Rasterizer) SetTargets(t *RenderTargets) { r.targets = t }

// ResetStats clears the frame statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = FrameStats{}
}

// projectMesh runs every vertex through the pipeline once. It returns false
// and logs when the mesh cannot be drawn.
func (r *Rasterizer) projectMesh(mesh MeshRenderer, model math3d.Mat4) bool {
	n := mesh.VertexCount()
	if n == 0 || mesh.TriangleCount() == 0 {
		Logger().Debug("skipping empty mesh", "vertices", n, "triangles", mesh.TriangleCount())
		return false
	}
	for i := range mesh.TriangleCount() {
		for _, idx := range mesh.GetFace(i) {
			if idx < 0 || idx >= n {
				Logger().Debug("skipping mesh with out-of-range index",
					"triangle", i, "index", idx, "vertices", n)
				return false
			}
		}
	}

	r.pipeline.SetModel(model)
	if cap(r.screen) < n {
		r.screen = make([]screenVertex, n)
	}
	r.screen = r.screen[:n]
	for i := range n {
		pos, w := r.pipeline.Project(mesh.GetVertex(i))
		r.screen[i] = screenVertex{pos: pos, w: w}
	}
	return true
}

// visible applies the behind-the-eye test and, when enabled, back-face
// culling to one projected triangle, updating the stats.
func (r *Rasterizer) visible(s0, s1, s2 screenVertex) bool {
	r.Stats.Submitted++
	if s0.w <= 0 && s1.w <= 0 && s2.w <= 0 {
		r.Stats.Behind++
		return false
	}
	if r.CullBackfaces {
		// Screen Y points down, so clockwise (front facing) is negative
		area := edge(s0.pos.XY(), s1.pos.XY(), s2.pos.X, s2.pos.Y)
		if !(area < 0) {
			r.Stats.Culled++
			return false
		}
	}
	r.Stats.Drawn++
	return true
}

// DrawMeshWireframe renders every triangle edge as a line.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, model math3d.Mat4, color Color) {
	if !r.projectMesh(mesh, model) {
		return
	}
	fb := r.targets.Color

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		s0, s1, s2 := r.screen[face[0]], r.screen[face[1]], r.screen[face[2]]
		if !r.visible(s0, s1, s2) {
			continue
		}
		fb.DrawLine(s0.pos.XY(), s1.pos.XY(), color)
		fb.DrawLine(s1.pos.XY(), s2.pos.XY(), color)
		fb.DrawLine(s2.pos.XY(), s0.pos.XY(), color)
	}
}

// DrawMeshFlat fills every triangle with a palette color using the
// scanline filler. There is no depth test, so overlap is resolved by draw
// order; closed convex meshes render correctly with culling on.
func (r *Rasterizer) DrawMeshFlat(mesh MeshRenderer, model math3d.Mat4) {
	if !r.projectMesh(mesh, model) {
		return
	}
	palette := r.Palette
	if len(palette) == 0 {
		palette = []Color{ColorWhite}
	}
	fb := r.targets.Color

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		s0, s1, s2 := r.screen[face[0]], r.screen[face[1]], r.screen[face[2]]
		if !r.visible(s0, s1, s2) {
			continue
		}
		// Quads are split into triangle pairs; keep both halves one color
		fb.DrawFlatTriangle(s0.pos.XY(), s1.pos.XY(), s2.pos.XY(), palette[(i/2)%len(palette)])
	}
}

// DrawMeshTextured fills every triangle with the mesh texture, tinted by
// tint, using the depth-tested edge-function filler.
func (r *Rasterizer) DrawMeshTextured(mesh TexturedMeshRenderer, model math3d.Mat4, tint Color) {
	if !mesh.HasUVs() {
		Logger().Debug("skipping textured mesh without matching UVs", "vertices", mesh.VertexCount())
		return
	}
	tex := mesh.GetTexture()
	if tex == nil {
		Logger().Debug("skipping textured mesh without texture")
		return
	}
	if !r.projectMesh(mesh, model) {
		return
	}

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		s0, s1, s2 := r.screen[face[0]], r.screen[face[1]], r.screen[face[2]]
		if !r.visible(s0, s1, s2) {
			continue
		}
		r.targets.DrawTexturedTriangle(
			s0.pos, s1.pos, s2.pos,
			mesh.GetUV(face[0]), mesh.GetUV(face[1]), mesh.GetUV(face[2]),
			tex, tint,
		)
	}
}
