package main

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	xdraw "golang.org/x/image/draw"

	"github.com/taigrr/scanline/internal/frame"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// turntable renders one full revolution of a mesh about the Y axis.
type turntable struct {
	Frames int
	Scale  int // output pixels per framebuffer pixel
	OutDir string
}

// render writes Frames PNG files to OutDir and returns their paths.
func (t turntable) render(r *frame.Renderer, mesh *models.Mesh, bar *progressbar.ProgressBar, log *slog.Logger) ([]string, error) {
	if t.Frames <= 0 {
		return nil, fmt.Errorf("frame count %d must be positive", t.Frames)
	}
	if err := os.MkdirAll(t.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, t.Frames)
	for i := range t.Frames {
		angle := 2 * math.Pi * float64(i) / float64(t.Frames)
		stats, err := r.Render(mesh, math3d.RotateY(angle))
		if err != nil {
			return paths, fmt.Errorf("frame %d: %w", i, err)
		}
		log.Debug("rendered frame", "frame", i, "drawn", stats.Drawn, "culled", stats.Culled)

		path := filepath.Join(t.OutDir, fmt.Sprintf("frame_%04d.png", i))
		if err := t.save(path, r.Framebuffer()); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		if err := bar.Add(1); err != nil {
			return paths, fmt.Errorf("progress: %w", err)
		}
	}
	return paths, nil
}

// upscale enlarges fb by an integer factor with nearest-neighbor sampling so
// pixel edges stay sharp.
func upscale(fb *render.Framebuffer, scale int) *image.NRGBA {
	if scale <= 1 {
		return fb.ToImage()
	}
	dst := image.NewNRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), fb, fb.Bounds(), xdraw.Src, nil)
	return dst
}

func (t turntable) save(path string, fb *render.Framebuffer) error {
	if t.Scale <= 1 {
		return fb.SavePNG(path)
	}
	return render.WritePNG(path, upscale(fb, t.Scale))
}
