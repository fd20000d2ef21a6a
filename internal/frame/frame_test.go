package frame

import (
	"errors"
	"testing"

	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

func newTestRenderer(t *testing.T, mode config.Mode) *Renderer {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = mode
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func countColor(fb *render.Framebuffer, c render.Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestRenderTextured(t *testing.T) {
	r := newTestRenderer(t, config.ModeTextured)
	tex := render.NewCheckerTexture(8, 8, 4, render.ColorWhite, render.ColorRed)

	stats, err := r.Render(models.NewTexturedCube(1.5, tex), math3d.RotateY(0.5))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if stats.Submitted != 12 || stats.Drawn == 0 {
		t.Errorf("stats = %+v", stats)
	}

	fb := r.Framebuffer()
	if c := fb.GetPixel(80, 45); c != render.ColorWhite && c != render.ColorRed {
		t.Errorf("center pixel = %#x, want a texel", uint32(c))
	}
	if c := fb.GetPixel(0, 0); c != r.Background {
		t.Errorf("corner pixel = %#x, want background", uint32(c))
	}
	if d := r.Targets().Depth.At(80, 45); d >= render.FarDepth {
		t.Errorf("center depth = %v, want cube surface", d)
	}
}

func TestRenderWireframeLeavesDepth(t *testing.T) {
	r := newTestRenderer(t, config.ModeWireframe)
	if _, err := r.Render(models.NewCube(1.5), math3d.Identity()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if countColor(r.Framebuffer(), WireColor) == 0 {
		t.Error("no wireframe pixels drawn")
	}
	for i, d := range r.Targets().Depth.Values {
		if d != render.FarDepth {
			t.Fatalf("depth[%d] = %v, lines must not write depth", i, d)
		}
	}
}

func TestRenderTexturedFallsBackToFlat(t *testing.T) {
	r := newTestRenderer(t, config.ModeTextured)
	if _, err := r.Render(models.NewCube(1.5), math3d.Identity()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	c := r.Framebuffer().GetPixel(80, 45)
	found := false
	for _, p := range render.DefaultPalette {
		if c == p {
			found = true
		}
	}
	if !found {
		t.Errorf("center pixel = %#x, want a palette color", uint32(c))
	}
}

func TestRenderClearsPreviousFrame(t *testing.T) {
	r := newTestRenderer(t, config.ModeFlat)
	if _, err := r.Render(models.NewCube(1.5), math3d.Identity()); err != nil {
		t.Fatal(err)
	}
	stats, err := r.Render(nil, math3d.Identity())
	if err != nil {
		t.Fatal(err)
	}
	if stats != (render.FrameStats{}) {
		t.Errorf("empty frame stats = %+v", stats)
	}
	fb := r.Framebuffer()
	if n := countColor(fb, r.Background); n != len(fb.Pixels) {
		t.Errorf("%d of %d pixels are background", n, len(fb.Pixels))
	}
}

func TestRenderGrid(t *testing.T) {
	r := newTestRenderer(t, config.ModeFlat)
	r.ShowGrid = true
	if _, err := r.Render(nil, math3d.Identity()); err != nil {
		t.Fatal(err)
	}
	if countColor(r.Framebuffer(), GridColor) == 0 {
		t.Error("grid not drawn")
	}
}

func TestRenderGroundPlane(t *testing.T) {
	tests := []struct {
		mode       config.Mode
		wantGround bool
	}{
		{config.ModeFlat, true},
		{config.ModeTextured, true},
		{config.ModeWireframe, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			r := newTestRenderer(t, tc.mode)
			r.ShowGrid = true
			stats, err := r.Render(nil, math3d.Identity())
			if err != nil {
				t.Fatal(err)
			}
			if stats != (render.FrameStats{}) {
				t.Errorf("ground counted in stats: %+v", stats)
			}
			if got := countColor(r.Framebuffer(), GroundColor) > 0; got != tc.wantGround {
				t.Errorf("ground drawn = %v, want %v", got, tc.wantGround)
			}
			if countColor(r.Framebuffer(), GridColor) == 0 {
				t.Error("grid lines missing over the ground")
			}
		})
	}
}

func TestRenderAxes(t *testing.T) {
	r := newTestRenderer(t, config.ModeFlat)
	if _, err := r.Render(nil, math3d.Identity()); err != nil {
		t.Fatal(err)
	}
	if countColor(r.Framebuffer(), render.ColorRed) != 0 {
		t.Fatal("axes drawn while hidden")
	}

	r.ShowAxes = true
	if _, err := r.Render(models.NewCube(1), math3d.Identity()); err != nil {
		t.Fatal(err)
	}
	for _, c := range []render.Color{render.ColorRed, render.ColorGreen, render.ColorBlue} {
		if countColor(r.Framebuffer(), c) == 0 {
			t.Errorf("axis %#x not drawn", uint32(c))
		}
	}
}

func TestRenderCulling(t *testing.T) {
	r := newTestRenderer(t, config.ModeFlat)
	r.SetCulling(false)
	stats, err := r.Render(models.NewCube(1.5), math3d.Identity())
	if err != nil {
		t.Fatal(err)
	}
	if r.Culling() || stats.Culled != 0 || stats.Drawn != 12 {
		t.Errorf("culling off: stats = %+v", stats)
	}
}

func TestResize(t *testing.T) {
	r := newTestRenderer(t, config.ModeFlat)
	if err := r.Resize(40, 20); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if r.Targets().Width() != 40 || r.Targets().Height() != 20 {
		t.Errorf("targets = %dx%d", r.Targets().Width(), r.Targets().Height())
	}
	if r.Camera.AspectRatio != 2 {
		t.Errorf("aspect = %v, want 2", r.Camera.AspectRatio)
	}
	if err := r.Resize(0, 10); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Resize(0, 10) error = %v", err)
	}
}

func TestRenderDegenerateCamera(t *testing.T) {
	r := newTestRenderer(t, config.ModeFlat)
	r.Camera.SetEye(r.Camera.At)

	_, err := r.Render(models.NewCube(1), math3d.Identity())
	if !errors.Is(err, math3d.ErrDegenerateBasis) {
		t.Errorf("error = %v, want ErrDegenerateBasis", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Far = cfg.Near
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New error = %v", err)
	}
}
