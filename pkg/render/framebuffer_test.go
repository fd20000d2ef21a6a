package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

// litPixels returns every pixel not equal to bg.
func litPixels(fb *Framebuffer, bg Color) map[[2]int]Color {
	lit := make(map[[2]int]Color)
	for y := range fb.Height {
		for x := range fb.Width {
			if c := fb.GetPixel(x, y); c != bg {
				lit[[2]int{x, y}] = c
			}
		}
	}
	return lit
}

func TestDrawPoint(t *testing.T) {
	fb := NewFramebuffer(4, 3)

	tests := []struct {
		name    string
		x, y    int
		written bool
	}{
		{"origin", 0, 0, true},
		{"last pixel", 3, 2, true},
		{"x at width", 4, 0, false},
		{"y at height", 0, 3, false},
		{"negative x", -1, 1, false},
		{"negative y", 1, -1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb.Clear(ColorBlack)
			fb.DrawPoint(tc.x, tc.y, ColorRed)
			lit := litPixels(fb, ColorBlack)
			if tc.written {
				if len(lit) != 1 || fb.Pixels[tc.x+tc.y*fb.Width] != ColorRed {
					t.Errorf("expected single write at (%d,%d), got %v", tc.x, tc.y, lit)
				}
			} else if len(lit) != 0 {
				t.Errorf("out-of-bounds write at (%d,%d) changed %v", tc.x, tc.y, lit)
			}
		})
	}
}

func TestClear(t *testing.T) {
	fb := NewFramebuffer(7, 5)
	fb.Clear(RGB(12, 10, 40))
	for i, c := range fb.Pixels {
		if c != RGB(12, 10, 40) {
			t.Fatalf("pixel %d = %#x after clear", i, uint32(c))
		}
	}
}

func TestDrawLineHorizontal(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(math3d.V2(0, 0), math3d.V2(4, 0), ColorWhite)

	lit := litPixels(fb, 0)
	if len(lit) != 5 {
		t.Fatalf("got %d pixels, want 5: %v", len(lit), lit)
	}
	for x := range 5 {
		if _, ok := lit[[2]int{x, 0}]; !ok {
			t.Errorf("missing pixel (%d,0)", x)
		}
	}
}

func TestDrawLineSteep(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(math3d.V2(0, 0), math3d.V2(3, 4), ColorWhite)

	lit := litPixels(fb, 0)
	if len(lit) != 5 {
		t.Fatalf("got %d pixels, want 5: %v", len(lit), lit)
	}
	assertEightConnected(t, lit, [2]int{0, 0}, [2]int{3, 4})
}

func TestDrawLineDirectionIndependent(t *testing.T) {
	segments := [][2]math3d.Vec2{
		{math3d.V2(1, 1), math3d.V2(8, 3)},
		{math3d.V2(2, 9), math3d.V2(6, 0)},
		{math3d.V2(9, 2), math3d.V2(0, 7)},
		{math3d.V2(5, 0), math3d.V2(5, 9)},
	}

	for _, s := range segments {
		a := NewFramebuffer(10, 10)
		b := NewFramebuffer(10, 10)
		a.DrawLine(s[0], s[1], ColorWhite)
		b.DrawLine(s[1], s[0], ColorWhite)

		la, lb := litPixels(a, 0), litPixels(b, 0)
		if len(la) != len(lb) {
			t.Errorf("%v: forward %d pixels, reverse %d", s, len(la), len(lb))
		}
		dx := math.Abs(s[1].X - s[0].X)
		dy := math.Abs(s[1].Y - s[0].Y)
		if want := int(math.Max(dx, dy)) + 1; len(la) != want {
			t.Errorf("%v: got %d pixels, want %d", s, len(la), want)
		}
		assertEightConnected(t, la,
			[2]int{int(s[0].X), int(s[0].Y)}, [2]int{int(s[1].X), int(s[1].Y)})
	}
}

func TestDrawLineClipsAndSkips(t *testing.T) {
	fb := NewFramebuffer(10, 10)

	// Partially off screen: only in-bounds pixels are written
	fb.DrawLine(math3d.V2(-5, 2), math3d.V2(20, 2), ColorWhite)
	if got := len(litPixels(fb, 0)); got != 10 {
		t.Errorf("clipped line lit %d pixels, want 10", got)
	}

	fb.Clear(0)
	fb.DrawLine(math3d.V2(math.NaN(), 0), math3d.V2(5, 5), ColorWhite)
	fb.DrawLine(math3d.V2(0, 0), math3d.V2(math.Inf(1), 5), ColorWhite)
	fb.DrawLine(math3d.V2(0, 0), math3d.V2(1e30, 1e30), ColorWhite)
	if got := len(litPixels(fb, 0)); got != 0 {
		t.Errorf("degenerate lines lit %d pixels, want 0", got)
	}
}

func TestDrawLineFarEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 math3d.Vec2
		want   int
		onLine func(x, y int) bool
	}{
		{
			name: "shallow across the width",
			p0:   math3d.V2(-1.6e7, 40), p1: math3d.V2(1.6e7, 41),
			want:   160,
			onLine: func(_, y int) bool { return y == 40 },
		},
		{
			name: "steep across the height",
			p0:   math3d.V2(80, 1.6e7), p1: math3d.V2(81, -1.6e7),
			want:   90,
			onLine: func(x, _ int) bool { return x == 80 },
		},
		{
			name: "diagonal through the corner",
			p0:   math3d.V2(1.6e7, 1.6e7), p1: math3d.V2(-1.6e7, -1.6e7),
			want:   90,
			onLine: func(x, y int) bool { return x == y },
		},
		{
			name: "passes above the frame",
			p0:   math3d.V2(-1.6e7, -5), p1: math3d.V2(1.6e7, -4),
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(160, 90)
			fb.DrawLine(tc.p0, tc.p1, ColorWhite)

			lit := litPixels(fb, 0)
			if len(lit) != tc.want {
				t.Fatalf("lit %d pixels, want %d", len(lit), tc.want)
			}
			for p := range lit {
				if !tc.onLine(p[0], p[1]) {
					t.Errorf("stray pixel %v", p)
				}
			}
		})
	}
}

func TestClipLineKeepsInsideEndpoints(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	a, b := math3d.V2(1.25, 2.5), math3d.V2(8.75, 9.5)
	c0, c1, ok := fb.clipLine(a, b)
	if !ok || c0 != a || c1 != b {
		t.Errorf("clipLine(%v, %v) = %v, %v, %v", a, b, c0, c1, ok)
	}

	c0, c1, ok = fb.clipLine(math3d.V2(-10, 5), math3d.V2(20, 5))
	if !ok || c0.Distance(math3d.V2(0, 5)) > 1e-9 || c1.Distance(math3d.V2(10, 5)) > 1e-9 {
		t.Errorf("horizontal clip = %v, %v, %v", c0, c1, ok)
	}

	if _, _, ok := fb.clipLine(math3d.V2(-3, -1), math3d.V2(-1, -3)); ok {
		t.Error("segment outside the frame was kept")
	}
}

func assertEightConnected(t *testing.T, lit map[[2]int]Color, from, to [2]int) {
	t.Helper()
	for _, end := range [][2]int{from, to} {
		if _, ok := lit[end]; !ok {
			t.Errorf("endpoint %v not drawn", end)
		}
	}
	// Walk from one end; every pixel must be reachable through neighbours
	seen := map[[2]int]bool{from: true}
	queue := [][2]int{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := [2]int{p[0] + dx, p[1] + dy}
				if _, ok := lit[n]; ok && !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	if len(seen) != len(lit) {
		t.Errorf("line has gaps: reached %d of %d pixels", len(seen), len(lit))
	}
}

func TestBlendPoint(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Clear(RGB(0, 0, 200))
	fb.BlendPoint(0, 0, RGBA(255, 0, 0, 128), BlendAlpha)
	fb.BlendPoint(5, 5, ColorWhite, BlendAlpha) // ignored

	got := fb.GetPixel(0, 0)
	if got.R() < 126 || got.R() > 130 || got.B() < 97 || got.B() > 101 {
		t.Errorf("blended pixel = %#x", uint32(got))
	}
	if fb.GetPixel(1, 0) != RGB(0, 0, 200) {
		t.Error("neighbouring pixel changed")
	}
}

func TestDrawRectClipped(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	fb.DrawRect(3, 3, 10, 10, ColorGreen)
	if got := len(litPixels(fb, 0)); got != 4 {
		t.Errorf("clipped rect lit %d pixels, want 4", got)
	}
}

func TestFramebufferIsDrawImage(t *testing.T) {
	var _ draw.Image = (*Framebuffer)(nil)

	fb := NewFramebuffer(4, 4)
	draw.Draw(fb, image.Rect(1, 1, 3, 3), image.NewUniform(color.NRGBA{R: 10, G: 20, B: 30, A: 255}), image.Point{}, draw.Src)

	if got := fb.GetPixel(2, 2); got != RGB(10, 20, 30) {
		t.Errorf("pixel after draw.Draw = %#x", uint32(got))
	}
	if got := fb.GetPixel(0, 0); got != 0 {
		t.Errorf("pixel outside rect = %#x", uint32(got))
	}
}

func TestCopyPremultiplied(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.DrawPoint(0, 0, RGB(10, 20, 30))
	fb.DrawPoint(1, 0, RGBA(200, 100, 50, 128))

	buf := make([]byte, 8)
	fb.CopyPremultiplied(buf)

	want := []byte{10, 20, 30, 255, 100, 50, 25, 128}
	if !bytes.Equal(buf, want) {
		t.Errorf("bytes = %v, want %v", buf, want)
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(RGB(12, 10, 40))
	fb.DrawPoint(1, 1, ColorYellow)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if FromColor(img.At(1, 1)) != ColorYellow || FromColor(img.At(0, 0)) != RGB(12, 10, 40) {
		t.Error("decoded PNG does not match framebuffer")
	}
}

func TestWritePNGMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "frame.png")
	if err := WritePNG(path, NewFramebuffer(2, 2)); err == nil {
		t.Error("WritePNG into a missing directory succeeded")
	}
}
