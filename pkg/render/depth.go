package render

// FarDepth is the value the depth buffer is cleared to. Fragments must be
// strictly nearer than the stored value to be written.
const FarDepth = 1.0

// DepthBuffer holds one depth value per pixel, row-major.
type DepthBuffer struct {
	Width  int
	Height int
	Values []float64
}

// NewDepthBuffer creates a depth buffer cleared to FarDepth.
func NewDepthBuffer(width, height int) *DepthBuffer {
	width, height = max(width, 0), max(height, 0)
	db := &DepthBuffer{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
	db.Clear()
	return db
}

// Clear resets every value to FarDepth (call before each frame).
func (db *DepthBuffer) Clear() {
	n := len(db.Values)
	if n == 0 {
		return
	}
	db.Values[0] = FarDepth
	for i := 1; i < n; i *= 2 {
		copy(db.Values[i:], db.Values[:i])
	}
}

// At returns the depth at (x, y), or FarDepth if out of bounds.
func (db *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= db.Width || y < 0 || y >= db.Height {
		return FarDepth
	}
	return db.Values[y*db.Width+x]
}

// RenderTargets pairs a color buffer with a depth buffer of the same size.
// The frame loop owns both; draw calls never retain them.
type RenderTargets struct {
	Color *Framebuffer
	Depth *DepthBuffer
}

// NewRenderTargets allocates matching color and depth buffers.
func NewRenderTargets(width, height int) *RenderTargets {
	return &RenderTargets{
		Color: NewFramebuffer(width, height),
		Depth: NewDepthBuffer(width, height),
	}
}

// Width returns the target width in pixels.
func (rt *RenderTargets) Width() int { return rt.Color.Width }

// Height returns the target height in pixels.
func (rt *RenderTargets) Height() int { return rt.Color.Height }

// Matched reports whether both buffers exist, share dimensions and hold a
// value for every pixel. Fills that index both buffers skip targets that
// fail this check.
func (rt *RenderTargets) Matched() bool {
	if rt == nil || rt.Color == nil || rt.Depth == nil {
		return false
	}
	w, h := rt.Color.Width, rt.Color.Height
	return rt.Depth.Width == w && rt.Depth.Height == h &&
		len(rt.Color.Pixels) >= w*h && len(rt.Depth.Values) >= w*h
}

// Clear fills the color buffer with bg and resets depth.
func (rt *RenderTargets) Clear(bg Color) {
	rt.Color.Clear(bg)
	rt.Depth.Clear()
}

// Resize reallocates both buffers when the size changes.
func (rt *RenderTargets) Resize(width, height int) {
	if width == rt.Width() && height == rt.Height() {
		return
	}
	rt.Color = NewFramebuffer(width, height)
	rt.Depth = NewDepthBuffer(width, height)
}
