package render

import (
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

// mockMesh implements TexturedMeshRenderer for testing.
type mockMesh struct {
	vertices []math3d.Vec3
	uvs      []math3d.Vec2
	faces    [][3]int
	tex      *Texture
}

func (m *mockMesh) VertexCount() int            { return len(m.vertices) }
func (m *mockMesh) TriangleCount() int          { return len(m.faces) }
func (m *mockMesh) GetVertex(i int) math3d.Vec3 { return m.vertices[i] }
func (m *mockMesh) GetFace(i int) [3]int        { return m.faces[i] }
func (m *mockMesh) HasUVs() bool                { return len(m.uvs) == len(m.vertices) && len(m.uvs) > 0 }
func (m *mockMesh) GetUV(i int) math3d.Vec2     { return m.uvs[i] }
func (m *mockMesh) GetTexture() *Texture        { return m.tex }

// newMockCube builds a unit cube, clockwise from outside, with one UV
// quad per face.
func newMockCube(tex *Texture) *mockMesh {
	corners := []math3d.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	quads := [][4]int{
		{0, 3, 2, 1}, {5, 6, 7, 4}, {4, 7, 3, 0},
		{1, 2, 6, 5}, {3, 7, 6, 2}, {4, 0, 1, 5},
	}
	uvs := []math3d.Vec2{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}

	m := &mockMesh{tex: tex}
	for _, q := range quads {
		base := len(m.vertices)
		for i, c := range q {
			m.vertices = append(m.vertices, corners[c])
			m.uvs = append(m.uvs, uvs[i])
		}
		m.faces = append(m.faces, [3]int{base, base + 1, base + 2}, [3]int{base, base + 2, base + 3})
	}
	return m
}

// createTestRasterizer creates a rasterizer looking at the origin from -Z.
func createTestRasterizer(t *testing.T, width, height int) *Rasterizer {
	t.Helper()
	cam := NewCamera()
	cam.SetEye(math3d.V3(0, 0, -5))
	cam.LookAt(math3d.Zero3())
	cam.SetAspectRatio(float64(width) / float64(height))
	p, err := NewPipeline(cam, width, height)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return NewRasterizer(NewRenderTargets(width, height), p)
}

func TestBackfaceCullingOnCube(t *testing.T) {
	r := createTestRasterizer(t, 64, 64)
	r.DrawMeshFlat(newMockCube(nil), math3d.Identity())

	// Only the -Z face looks at the camera
	want := FrameStats{Submitted: 12, Culled: 10, Drawn: 2}
	if r.Stats != want {
		t.Errorf("stats = %+v, want %+v", r.Stats, want)
	}
	if got := r.Targets().Color.GetPixel(32, 32); got != r.Palette[0] {
		t.Errorf("center pixel = %#x, want front face color", uint32(got))
	}
}

func TestBackfaceCullingDisabled(t *testing.T) {
	r := createTestRasterizer(t, 64, 64)
	r.CullBackfaces = false
	r.DrawMeshWireframe(newMockCube(nil), math3d.Identity(), ColorWhite)

	if r.Stats.Drawn != 12 || r.Stats.Culled != 0 {
		t.Errorf("stats = %+v, want all 12 drawn", r.Stats)
	}
	if n := len(litPixels(r.Targets().Color, 0)); n == 0 {
		t.Error("wireframe drew nothing")
	}
}

func TestDrawMeshTexturedDepth(t *testing.T) {
	r := createTestRasterizer(t, 64, 64)
	r.CullBackfaces = false
	tex := NewCheckerTexture(8, 8, 2, ColorWhite, ColorGray)
	r.DrawMeshTextured(newMockCube(tex), math3d.Identity(), ColorWhite)

	// The nearest (-Z) face wins the depth test even without culling
	depth := r.Targets().Depth.At(32, 32)
	front, _ := r.Pipeline().Project(math3d.V3(0, 0, -1))
	if diff := depth - front.Z; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("depth at center = %v, want front face depth %v", depth, front.Z)
	}
	if c := r.Targets().Color.GetPixel(32, 32); c != ColorWhite && c != ColorGray {
		t.Errorf("center pixel = %#x, want a checker texel", uint32(c))
	}
}

func TestDrawMeshSkipsBadInput(t *testing.T) {
	tests := []struct {
		name string
		mesh *mockMesh
		flat bool
	}{
		{"empty mesh", &mockMesh{}, true},
		{"index out of range", &mockMesh{
			vertices: []math3d.Vec3{{}, {X: 1}, {Y: 1}},
			faces:    [][3]int{{0, 2, 5}},
		}, true},
		{"uv mismatch", &mockMesh{
			vertices: []math3d.Vec3{{}, {X: 1}, {Y: 1}},
			uvs:      []math3d.Vec2{{}},
			faces:    [][3]int{{0, 2, 1}},
			tex:      NewTexture(1, 1),
		}, false},
		{"missing texture", newMockCube(nil), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := createTestRasterizer(t, 16, 16)
			if tc.flat {
				r.DrawMeshFlat(tc.mesh, math3d.Identity())
			} else {
				r.DrawMeshTextured(tc.mesh, math3d.Identity(), ColorWhite)
			}
			if n := len(litPixels(r.Targets().Color, 0)); n != 0 {
				t.Errorf("bad mesh drew %d pixels", n)
			}
			if r.Stats.Submitted != 0 {
				t.Errorf("bad mesh submitted %d triangles", r.Stats.Submitted)
			}
		})
	}
}

func TestDrawMeshBehindCamera(t *testing.T) {
	r := createTestRasterizer(t, 32, 32)
	r.DrawMeshFlat(newMockCube(nil), math3d.Translate(math3d.V3(0, 0, -20)))
	if r.Stats.Behind != 12 || r.Stats.Drawn != 0 {
		t.Errorf("stats = %+v, want every triangle behind the eye", r.Stats)
	}
}

func TestDrawAxesAndGrid(t *testing.T) {
	r := createTestRasterizer(t, 64, 64)
	r.DrawAxes(1)
	fb := r.Targets().Color

	var red, green int
	for _, c := range fb.Pixels {
		switch c {
		case ColorRed:
			red++
		case ColorGreen:
			green++
		}
	}
	if red == 0 || green == 0 {
		t.Errorf("axes missing: red %d green %d", red, green)
	}

	fb.Clear(0)
	r.DrawGrid(4, 1, -1, ColorGray)
	if n := len(litPixels(fb, 0)); n == 0 {
		t.Error("grid drew nothing")
	}
}

func BenchmarkDrawMeshTextured(b *testing.B) {
	cam := NewCamera()
	p, _ := NewPipeline(cam, 320, 180)
	r := NewRasterizer(NewRenderTargets(320, 180), p)
	cube := newMockCube(NewCheckerTexture(64, 64, 8, ColorWhite, ColorGray))
	model := math3d.RotateY(0.6).Mul(math3d.RotateX(0.3))

	for b.Loop() {
		r.Targets().Clear(ColorBlack)
		r.DrawMeshTextured(cube, model, ColorWhite)
	}
}
