// scanline-render - headless turntable renderer
// Writes one PNG per frame of a full revolution of the demo cube.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

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
	frames     = flag.Int("frames", 36, "Frames per revolution")
	scale      = flag.Int("scale", 4, "Output pixels per framebuffer pixel")
	outDir     = flag.String("out", "frames", "Output directory")
	grid       = flag.Bool("grid", false, "Draw the ground grid")
	verbose    = flag.Bool("v", false, "Log debug output")
)

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

func run(log *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	r, err := frame.New(cfg)
	if err != nil {
		return err
	}
	r.ShowGrid = *grid

	bar := progressbar.Default(int64(*frames), "rendering")
	defer bar.Close()

	t := turntable{Frames: *frames, Scale: *scale, OutDir: *outDir}
	paths, err := t.render(r, frame.DemoMesh(), bar, log)
	if err != nil {
		return err
	}
	log.Info("turntable written", "frames", len(paths), "dir", *outDir,
		"size", fmt.Sprintf("%dx%d", cfg.Width*max(*scale, 1), cfg.Height*max(*scale, 1)))
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline-render - Turntable PNG Renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline-render [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	render.SetLogger(log)

	if err := run(log); err != nil {
		log.Error("render failed", "err", err)
		os.Exit(1)
	}
}
