package render

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
)

// TransformToScreen runs a point through the camera and projection
// matrices, divides by w in clip space, then applies the viewport matrix.
// The result holds pixel X and Y and depth in Z. Points behind the eye are
// passed through unclipped.
func TransformToScreen(p math3d.Vec3, view, projection, viewport math3d.Mat4) math3d.Vec3 {
	clip := view.Mul(projection).MulVec4(math3d.V4FromV3(p, 1))
	return viewport.MulVec4(clip.PerspectiveDivide()).Vec3()
}

// Pipeline holds the matrices for one frame: an optional model matrix,
// view, projection and viewport. The fields may be assigned directly; the
// combined model-view-projection product follows them.
type Pipeline struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4

	// modelViewProj is the product of the inputs last seen in built.
	modelViewProj math3d.Mat4
	built         [3]math3d.Mat4
}

// NewPipeline builds the frame matrices from a camera and target size.
// The camera's aspect ratio is not touched; callers keep it in sync with
// the target.
func NewPipeline(cam *Camera, width, height int) (*Pipeline, error) {
	view, err := cam.ViewMatrix()
	if err != nil {
		return nil, fmt.Errorf("view matrix: %w", err)
	}
	proj, err := cam.ProjectionMatrix()
	if err != nil {
		return nil, fmt.Errorf("projection matrix: %w", err)
	}
	viewport, err := math3d.ViewportMatrix(0, 0, float64(width), float64(height), 0, 1)
	if err != nil {
		return nil, fmt.Errorf("viewport matrix: %w", err)
	}

	p := &Pipeline{
		View:       view,
		Projection: proj,
		Viewport:   viewport,
	}
	p.SetModel(math3d.Identity())
	return p, nil
}

// SetModel sets the model matrix applied before the camera matrix.
func (p *Pipeline) SetModel(model math3d.Mat4) {
	p.Model = model
	p.refresh()
}

func (p *Pipeline) refresh() {
	inputs := [3]math3d.Mat4{p.Model, p.View, p.Projection}
	if inputs == p.built {
		return
	}
	p.built = inputs
	p.modelViewProj = p.Model.Mul(p.View).Mul(p.Projection)
}

// Project transforms a model-space point to screen space. It also returns
// the clip-space w; w <= 0 means the point is at or behind the eye and the
// screen position is meaningless.
func (p *Pipeline) Project(v math3d.Vec3) (math3d.Vec3, float64) {
	p.refresh()
	clip := p.modelViewProj.MulVec4(math3d.V4FromV3(v, 1))
	return p.Viewport.MulVec4(clip.PerspectiveDivide()).Vec3(), clip.W
}
