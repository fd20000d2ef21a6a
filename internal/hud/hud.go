// Package hud draws a small status overlay into a framebuffer.
package hud

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/render"
)

// FPSCounter averages the frame rate over one-second windows.
type FPSCounter struct {
	fps    float64
	frames int
	since  time.Time
}

// NewFPSCounter starts a counter at now.
func NewFPSCounter(now time.Time) *FPSCounter {
	return &FPSCounter{since: now}
}

// Tick records a frame finished at now and returns the latest average.
func (c *FPSCounter) Tick(now time.Time) float64 {
	c.frames++
	elapsed := now.Sub(c.since)
	if elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.since = now
	}
	return c.fps
}

// FPS returns the last computed average.
func (c *FPSCounter) FPS() float64 { return c.fps }

// Overlay renders lines of text on a translucent panel.
type Overlay struct {
	Face    font.Face
	Text    render.Color
	Panel   render.Color
	Padding int
}

// New returns an overlay using the 7x13 bitmap font.
func New() *Overlay {
	return &Overlay{
		Face:    basicfont.Face7x13,
		Text:    render.RGB(230, 230, 230),
		Panel:   render.RGBA(0, 0, 0, 160),
		Padding: 2,
	}
}

// Size returns the pixel size of the panel that Draw would cover.
func (o *Overlay) Size(lines []string) (width, height int) {
	if len(lines) == 0 {
		return 0, 0
	}
	for _, line := range lines {
		width = max(width, font.MeasureString(o.Face, line).Ceil())
	}
	lineHeight := o.Face.Metrics().Height.Ceil()
	return width + 2*o.Padding, len(lines)*lineHeight + 2*o.Padding
}

// Draw blends the panel at (x, y) and draws lines on top of it. Anything
// outside the framebuffer is clipped.
func (o *Overlay) Draw(fb *render.Framebuffer, x, y int, lines []string) {
	w, h := o.Size(lines)
	if w == 0 {
		return
	}
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.BlendPoint(px, py, o.Panel, render.BlendAlpha)
		}
	}

	metrics := o.Face.Metrics()
	d := font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(o.Text.NRGBA()),
		Face: o.Face,
	}
	baseline := y + o.Padding + metrics.Ascent.Ceil()
	for _, line := range lines {
		d.Dot = fixed.P(x+o.Padding, baseline)
		d.DrawString(line)
		baseline += metrics.Height.Ceil()
	}
}

// Status formats the standard viewer lines.
func Status(fps float64, mode config.Mode, stats render.FrameStats) []string {
	return []string{
		fmt.Sprintf("%3.0f fps  %s", fps, mode),
		fmt.Sprintf("tris %d/%d  culled %d", stats.Drawn, stats.Submitted, stats.Culled),
	}
}
