// Package config loads viewer settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// maxConfigSize guards against loading something that is clearly not a
// config file.
const maxConfigSize = 1024 * 1024

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Mode selects how the mesh is rasterized.
type Mode string

const (
	ModeWireframe Mode = "wireframe"
	ModeFlat      Mode = "flat"
	ModeTextured  Mode = "textured"
)

// Modes lists the render modes in cycling order.
var Modes = []Mode{ModeTextured, ModeFlat, ModeWireframe}

// Next returns the mode after m in Modes.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, mode := range Modes {
		if mode == m {
			return true
		}
	}
	return false
}

// Config holds the recognized constants plus viewer preferences.
type Config struct {
	Width         int        `yaml:"width"`
	Height        int        `yaml:"height"`
	FOV           float64    `yaml:"fov"` // vertical, degrees
	Near          float64    `yaml:"near"`
	Far           float64    `yaml:"far"`
	Eye           [3]float64 `yaml:"eye,flow"`
	At            [3]float64 `yaml:"at,flow"`
	Up            [3]float64 `yaml:"up,flow"`
	Mode          Mode       `yaml:"mode"`
	Background    [3]uint8   `yaml:"background,flow"`
	Spin          float64    `yaml:"spin"` // radians per second
	FPS           int        `yaml:"fps"`
	CullBackfaces bool       `yaml:"cull_backfaces"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:         160,
		Height:        90,
		FOV:           60,
		Near:          0.1,
		Far:           100,
		Eye:           [3]float64{0, 1.5, -4},
		At:            [3]float64{0, 0, 0},
		Up:            [3]float64{0, 1, 0},
		Mode:          ModeTextured,
		Background:    [3]uint8{12, 10, 40},
		Spin:          0.8,
		FPS:           60,
		CullBackfaces: true,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	info, err := os.Stat(path)
	if err != nil {
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %s is %d bytes: %w", path, info.Size(), ErrInvalid)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the constraints the pipeline relies on.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive: %w", c.Width, c.Height, ErrInvalid))
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		errs = append(errs, fmt.Errorf("fov %v outside (0, 180): %w", c.FOV, ErrInvalid))
	}
	if !(c.Near > 0) {
		errs = append(errs, fmt.Errorf("near %v must be positive: %w", c.Near, ErrInvalid))
	}
	if !(c.Far > c.Near) {
		errs = append(errs, fmt.Errorf("far %v must exceed near %v: %w", c.Far, c.Near, ErrInvalid))
	}
	if c.Eye == c.At {
		errs = append(errs, fmt.Errorf("eye and at are both %v: %w", c.Eye, ErrInvalid))
	}
	if c.Up == [3]float64{} {
		errs = append(errs, fmt.Errorf("up must be nonzero: %w", ErrInvalid))
	}
	if !c.Mode.Valid() {
		errs = append(errs, fmt.Errorf("mode %q: %w", c.Mode, ErrInvalid))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive: %w", c.FPS, ErrInvalid))
	}
	return errors.Join(errs...)
}

// Camera builds a camera from the configured view and a given aspect ratio.
func (c Config) Camera(aspect float64) *render.Camera {
	cam := render.NewCamera()
	cam.SetEye(vec(c.Eye))
	cam.LookAt(vec(c.At))
	cam.SetUp(vec(c.Up))
	cam.SetFOV(c.FOV)
	cam.SetClipPlanes(c.Near, c.Far)
	cam.SetAspectRatio(aspect)
	return cam
}

// BackgroundColor returns the clear color.
func (c Config) BackgroundColor() render.Color {
	return render.RGB(c.Background[0], c.Background[1], c.Background[2])
}

func vec(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
