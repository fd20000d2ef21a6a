// scanline-window - desktop 3D viewer
// Same renderer and controls as the terminal viewer, shown in a scaled
// window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/scanline/internal/frame"
	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	configPath = flag.String("config", "", "Path to YAML config")
	width      = flag.Int("width", 0, "Framebuffer width in pixels")
	height     = flag.Int("height", 0, "Framebuffer height in pixels")
	mode       = flag.String("mode", "", "Render mode: textured, flat or wireframe")
	fov        = flag.Float64("fov", 0, "Vertical field of view in degrees")
	scale      = flag.Int("scale", 4, "Window pixels per framebuffer pixel")
	verbose    = flag.Bool("v", false, "Log debug output")
)

// pressKeys fire once per press.
var pressKeys = map[ebiten.Key]frame.Action{
	ebiten.KeyEscape: frame.ActionQuit,
	ebiten.KeySpace:  frame.ActionRandomSpin,
	ebiten.KeyM:      frame.ActionNextMode,
	ebiten.KeyG:      frame.ActionToggleGrid,
	ebiten.KeyX:      frame.ActionToggleAxes,
	ebiten.KeyC:      frame.ActionToggleCulling,
	ebiten.KeySlash:  frame.ActionToggleHUD,
	ebiten.KeyR:      frame.ActionReset,
}

// holdKeys repeat every tick while held.
var holdKeys = map[ebiten.Key]frame.Action{
	ebiten.KeyArrowLeft:  frame.ActionOrbitLeft,
	ebiten.KeyArrowRight: frame.ActionOrbitRight,
	ebiten.KeyArrowUp:    frame.ActionOrbitUp,
	ebiten.KeyArrowDown:  frame.ActionOrbitDown,
	ebiten.KeyEqual:      frame.ActionZoomIn,
	ebiten.KeyMinus:      frame.ActionZoomOut,
	ebiten.KeyW:          frame.ActionPitchUp,
	ebiten.KeyS:          frame.ActionPitchDown,
	ebiten.KeyA:          frame.ActionYawLeft,
	ebiten.KeyD:          frame.ActionYawRight,
	ebiten.KeyQ:          frame.ActionRollLeft,
	ebiten.KeyE:          frame.ActionRollRight,
}

// Game adapts a frame.Viewer to ebiten's update/draw loop.
type Game struct {
	viewer *frame.Viewer
	screen *ebiten.Image
	pixels []byte
	width  int
	height int
}

// NewGame creates a game showing the demo cube with a framebuffer of
// cfg.Width×cfg.Height. The window scales it up.
func NewGame(cfg config.Config) (*Game, error) {
	viewer, err := frame.NewViewer(cfg, frame.DemoMesh())
	if err != nil {
		return nil, err
	}
	return &Game{
		viewer: viewer,
		screen: ebiten.NewImage(cfg.Width, cfg.Height),
		pixels: make([]byte, cfg.Width*cfg.Height*4),
		width:  cfg.Width,
		height: cfg.Height,
	}, nil
}

// Update applies key actions, renders one frame and uploads it to the
// offscreen image. It returns ebiten.Termination when the viewer quits.
func (g *Game) Update() error {
	for key, action := range pressKeys {
		if inpututil.IsKeyJustPressed(key) && !g.viewer.Apply(action) {
			return ebiten.Termination
		}
	}
	for key, action := range holdKeys {
		if ebiten.IsKeyPressed(key) {
			g.viewer.Apply(action)
		}
	}

	if err := g.viewer.Frame(time.Now()); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fb := g.viewer.Framebuffer()
	frame.DrawOrbitMarker(fb, g.viewer.Camera)
	fb.CopyPremultiplied(g.pixels)
	g.screen.WritePixels(g.pixels)
	return nil
}

// Draw copies the last rendered frame to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.screen, nil)
}

// Layout keeps the logical screen at framebuffer size whatever the window
// size, so ebiten does the upscaling.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *mode != "" {
		cfg.Mode = config.Mode(*mode)
	}
	if *fov != 0 {
		cfg.FOV = *fov
	}
	return cfg, cfg.Validate()
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline-window - Desktop 3D Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline-window [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n%s", frame.Help)
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	render.SetLogger(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	game, err := NewGame(cfg)
	if err != nil {
		logger.Error("create viewer", "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("scanline")
	ebiten.SetWindowSize(cfg.Width*max(*scale, 1), cfg.Height*max(*scale, 1))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
