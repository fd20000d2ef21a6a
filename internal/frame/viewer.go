package frame

import (
	"math/rand/v2"
	"time"

	"github.com/taigrr/scanline/internal/hud"
	"github.com/taigrr/scanline/internal/spin"
	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Action is a viewer command bound to a key.
type Action int

// Viewer actions. Orbit and zoom move the camera; pitch, yaw, roll and
// random spin push the model's spring axes.
const (
	ActionNone Action = iota // unbound key
	ActionQuit               // leave the viewer

	// Camera
	ActionOrbitLeft  // swing the eye left around the target
	ActionOrbitRight // swing the eye right around the target
	ActionOrbitUp    // raise the eye toward the pole
	ActionOrbitDown  // lower the eye toward the pole
	ActionZoomIn     // dolly toward the target
	ActionZoomOut    // dolly away from the target

	// Model spin impulses
	ActionPitchUp
	ActionPitchDown
	ActionYawLeft
	ActionYawRight
	ActionRollLeft
	ActionRollRight
	ActionRandomSpin // random impulse on all three axes

	// Display toggles
	ActionNextMode      // cycle textured, flat, wireframe
	ActionToggleGrid    // ground plane and grid
	ActionToggleAxes    // world axes gizmo
	ActionToggleCulling // back-face culling
	ActionToggleHUD     // status overlay
	ActionReset         // stop the spin and restore the eye
)

const (
	orbitStep   = 0.1 // radians
	dollyStep   = 0.5
	impulseStep = 0.02 // radians per frame
)

// Help lists the controls shared by the interactive viewers.
const Help = `  Arrows      - Orbit camera
  +/-         - Zoom in/out
  W/S         - Pitch model
  A/D         - Yaw model
  Q/E         - Roll model
  Space       - Random spin
  M           - Cycle render mode
  G           - Toggle ground grid
  X           - Toggle axes
  C           - Toggle back-face culling
  ?           - Toggle HUD
  R           - Reset view
  Esc         - Quit
`

// DemoMesh returns the built-in textured cube.
func DemoMesh() *models.Mesh {
	tex := render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	return models.NewTexturedCube(1.5, tex)
}

// Viewer is the interactive state shared by the terminal and window
// front ends: a renderer, a spinning model and an optional HUD.
type Viewer struct {
	*Renderer
	Mesh    *models.Mesh
	Spin    *spin.State
	ShowHUD bool

	hud     *hud.Overlay
	fps     *hud.FPSCounter
	homeEye math3d.Vec3
	stats   render.FrameStats
}

// NewViewer creates a viewer for mesh from cfg. The viewer spins its own
// copy of mesh, moved so its bounding box is centered on the origin; the
// caller's mesh is left untouched.
func NewViewer(cfg config.Config, mesh *models.Mesh) (*Viewer, error) {
	r, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if mesh != nil {
		mesh = mesh.Clone()
		lo, hi := mesh.GetBounds()
		mesh.Transform(math3d.Translate(lo.Add(hi).Scale(-0.5)))
	}
	return &Viewer{
		Renderer: r,
		Mesh:     mesh,
		Spin:     spin.New(cfg.FPS, cfg.Spin),
		hud:      hud.New(),
		fps:      hud.NewFPSCounter(time.Now()),
		homeEye:  r.Camera.Eye,
	}, nil
}

// Stats returns the counts of the last drawn frame.
func (v *Viewer) Stats() render.FrameStats { return v.stats }

// Apply performs a single action. It reports false once the viewer should
// exit.
func (v *Viewer) Apply(a Action) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionOrbitLeft:
		v.Camera.Orbit(-orbitStep, 0)
	case ActionOrbitRight:
		v.Camera.Orbit(orbitStep, 0)
	case ActionOrbitUp:
		v.Camera.Orbit(0, orbitStep)
	case ActionOrbitDown:
		v.Camera.Orbit(0, -orbitStep)
	case ActionZoomIn:
		v.Camera.Dolly(dollyStep)
	case ActionZoomOut:
		v.Camera.Dolly(-dollyStep)
	case ActionPitchUp:
		v.Spin.ApplyImpulse(-impulseStep, 0, 0)
	case ActionPitchDown:
		v.Spin.ApplyImpulse(impulseStep, 0, 0)
	case ActionYawLeft:
		v.Spin.ApplyImpulse(0, -impulseStep, 0)
	case ActionYawRight:
		v.Spin.ApplyImpulse(0, impulseStep, 0)
	case ActionRollLeft:
		v.Spin.ApplyImpulse(0, 0, -impulseStep)
	case ActionRollRight:
		v.Spin.ApplyImpulse(0, 0, impulseStep)
	case ActionRandomSpin:
		v.Spin.ApplyImpulse(
			(rand.Float64()-0.5)*0.1,
			(rand.Float64()-0.5)*0.1,
			(rand.Float64()-0.5)*0.1,
		)
	case ActionNextMode:
		v.Mode = v.Mode.Next()
	case ActionToggleGrid:
		v.ShowGrid = !v.ShowGrid
	case ActionToggleAxes:
		v.ShowAxes = !v.ShowAxes
	case ActionToggleCulling:
		v.SetCulling(!v.Culling())
	case ActionToggleHUD:
		v.ShowHUD = !v.ShowHUD
	case ActionReset:
		v.Spin.Reset()
		v.Camera.SetEye(v.homeEye)
	}
	return true
}

// Frame advances the spin by one step and renders into the framebuffer,
// with the HUD on top when enabled.
func (v *Viewer) Frame(now time.Time) error {
	v.Spin.Update()
	stats, err := v.Render(v.Mesh, v.Spin.Matrix())
	if err != nil {
		return err
	}
	v.stats = stats

	fps := v.fps.Tick(now)
	if v.ShowHUD {
		v.hud.Draw(v.Framebuffer(), 0, 0, hud.Status(fps, v.Mode, stats))
	}
	return nil
}
