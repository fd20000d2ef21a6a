// scanline - terminal 3D viewer
// Renders a spinning textured cube in the terminal with half-block cells.
//
// Controls:
//
//	Arrows      - Orbit camera
//	+/-         - Zoom in/out
//	W/S         - Pitch model
//	A/D         - Yaw model
//	Q/E         - Roll model
//	Space       - Random spin
//	M           - Cycle render mode (textured, flat, wireframe)
//	G           - Toggle ground grid
//	C           - Toggle back-face culling
//	?           - Toggle HUD overlay
//	R           - Reset view
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/scanline/internal/frame"
	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	configPath = flag.String("config", "", "Path to YAML config")
	mode       = flag.String("mode", "", "Render mode: textured, flat or wireframe")
	fov        = flag.Float64("fov", 0, "Vertical field of view in degrees")
	logPath    = flag.String("log", "", "Write debug log to this file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline - Terminal 3D Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n%s", frame.Help)
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	if *mode != "" {
		cfg.Mode = config.Mode(*mode)
	}
	if *fov != 0 {
		cfg.FOV = *fov
	}
	return cfg, cfg.Validate()
}

func keyAction(ev uv.KeyPressEvent) frame.Action {
	switch {
	case ev.MatchString("escape", "ctrl+c"):
		return frame.ActionQuit
	case ev.MatchString("left"):
		return frame.ActionOrbitLeft
	case ev.MatchString("right"):
		return frame.ActionOrbitRight
	case ev.MatchString("up"):
		return frame.ActionOrbitUp
	case ev.MatchString("down"):
		return frame.ActionOrbitDown
	case ev.MatchString("+", "="):
		return frame.ActionZoomIn
	case ev.MatchString("-", "_"):
		return frame.ActionZoomOut
	case ev.MatchString("w"):
		return frame.ActionPitchUp
	case ev.MatchString("s"):
		return frame.ActionPitchDown
	case ev.MatchString("a"):
		return frame.ActionYawLeft
	case ev.MatchString("d"):
		return frame.ActionYawRight
	case ev.MatchString("q"):
		return frame.ActionRollLeft
	case ev.MatchString("e"):
		return frame.ActionRollRight
	case ev.MatchString("space"):
		return frame.ActionRandomSpin
	case ev.MatchString("m"):
		return frame.ActionNextMode
	case ev.MatchString("g"):
		return frame.ActionToggleGrid
	case ev.MatchString("x"):
		return frame.ActionToggleAxes
	case ev.MatchString("c"):
		return frame.ActionToggleCulling
	case ev.MatchString("?", "shift+/"):
		return frame.ActionToggleHUD
	case ev.MatchString("r"):
		return frame.ActionReset
	}
	return frame.ActionNone
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The screen owns stdout, so logs only go to a file
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	log := render.Logger()

	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	cfg.Width, cfg.Height = render.HalfBlockSize(cols, rows)
	viewer, err := frame.NewViewer(cfg, frame.DemoMesh())
	if err != nil {
		return err
	}
	log.Info("viewer started", "cols", cols, "rows", rows, "mode", cfg.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				if err := viewer.Resize(render.HalfBlockSize(cols, rows)); err != nil {
					log.Warn("resize skipped", "cols", cols, "rows", rows, "err", err)
				}
			case uv.KeyPressEvent:
				if !viewer.Apply(keyAction(ev)) {
					return nil
				}
			}

		case now := <-ticker.C:
			if err := viewer.Frame(now); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			viewer.Framebuffer().Draw(term, uv.Rect(0, 0, cols, rows))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
