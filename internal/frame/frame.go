// Package frame drives one rendered frame: it rebuilds the matrices from the
// camera, clears the targets and draws a mesh in the selected mode.
package frame

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Default colors for the non-textured parts of a frame.
var (
	WireColor   = render.RGB(0, 255, 128)
	GridColor   = render.RGB(70, 70, 90)
	GroundColor = render.RGB(32, 32, 44)
)

const (
	groundSize = 8
	gridStep   = 0.5
	axisLength = 1.5
)

// Renderer owns the render targets and camera of a viewer.
type Renderer struct {
	Camera     *render.Camera
	Mode       config.Mode
	Background render.Color
	Tint       render.Color

	// ShowGrid draws a ground grid under the mesh at GridY. Filled modes
	// also lay a solid ground plane beneath the grid lines.
	ShowGrid bool
	GridY    float64
	// ShowAxes draws the world X, Y and Z axes over the mesh.
	ShowAxes bool

	raster *render.Rasterizer
	ground *models.Mesh
}

// New creates a renderer from cfg with targets of cfg.Width×cfg.Height.
func New(cfg config.Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	aspect := float64(cfg.Width) / float64(cfg.Height)
	targets := render.NewRenderTargets(cfg.Width, cfg.Height)

	r := &Renderer{
		Camera:     cfg.Camera(aspect),
		Mode:       cfg.Mode,
		Background: cfg.BackgroundColor(),
		Tint:       render.ColorWhite,
		GridY:      -1,
		raster:     render.NewRasterizer(targets, nil),
		ground:     newGround(),
	}
	r.raster.CullBackfaces = cfg.CullBackfaces
	return r, nil
}

func newGround() *models.Mesh {
	tex := render.NewTexture(1, 1)
	tex.SetPixel(0, 0, GroundColor)
	return models.NewPlane(groundSize, int(groundSize/gridStep), 0, tex)
}

// Resize reallocates the targets and updates the camera aspect ratio.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, config.ErrInvalid)
	}
	r.raster.Targets().Resize(width, height)
	r.Camera.SetAspectRatio(float64(width) / float64(height))
	return nil
}

// Targets returns the color and depth buffers.
func (r *Renderer) Targets() *render.RenderTargets { return r.raster.Targets() }

// Framebuffer returns the color buffer.
func (r *Renderer) Framebuffer() *render.Framebuffer { return r.raster.Targets().Color }

// SetCulling toggles back-face culling.
func (r *Renderer) SetCulling(on bool) { r.raster.CullBackfaces = on }

// Culling reports whether back-face culling is on.
func (r *Renderer) Culling() bool { return r.raster.CullBackfaces }

// Render draws mesh with the model matrix into freshly cleared targets and
// returns the frame's triangle counts.
func (r *Renderer) Render(mesh *models.Mesh, model math3d.Mat4) (render.FrameStats, error) {
	targets := r.raster.Targets()
	p, err := render.NewPipeline(r.Camera, targets.Width(), targets.Height())
	if err != nil {
		return render.FrameStats{}, fmt.Errorf("build pipeline: %w", err)
	}
	r.raster.SetPipeline(p)
	r.raster.ResetStats()
	targets.Clear(r.Background)

	if r.ShowGrid {
		r.drawGround()
	}
	if mesh != nil {
		r.drawMesh(mesh, model)
	}
	if r.ShowAxes {
		r.raster.DrawAxes(axisLength)
	}
	return r.raster.Stats, nil
}

// drawGround fills the ground plane in filled modes and rules the grid on
// top. The plane's triangles stay out of the frame stats.
func (r *Renderer) drawGround() {
	if r.Mode != config.ModeWireframe {
		r.raster.DrawMeshTextured(r.ground, math3d.Translate(math3d.V3(0, r.GridY, 0)), render.ColorWhite)
		r.raster.ResetStats()
	}
	r.raster.DrawGrid(groundSize, gridStep, r.GridY, GridColor)
}

func (r *Renderer) drawMesh(mesh *models.Mesh, model math3d.Mat4) {
	switch r.Mode {
	case config.ModeWireframe:
		r.raster.DrawMeshWireframe(mesh, model, WireColor)
	case config.ModeFlat:
		r.raster.DrawMeshFlat(mesh, model)
	default:
		if mesh.HasUVs() && mesh.GetTexture() != nil {
			r.raster.DrawMeshTextured(mesh, model, r.Tint)
		} else {
			r.raster.DrawMeshFlat(mesh, model)
		}
	}
}
