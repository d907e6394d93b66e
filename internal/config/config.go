// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Projection ProjectionConfig `yaml:"projection"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`

	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// CameraConfig holds the initial look-at and the arcball sensitivities.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Center [3]float32 `yaml:"center"`
	Up     [3]float32 `yaml:"up"`

	MotionSpeed float32 `yaml:"motion_speed"` // pan units per pixel per second
	ZoomSpeed   float32 `yaml:"zoom_speed"`   // zoom units per wheel step per second

	// ZoomElapsed is the elapsed time fed to Zoom for one wheel event.
	ZoomElapsed float32 `yaml:"zoom_elapsed"`
}

// ProjectionConfig holds the perspective projection used by the viewer.
type ProjectionConfig struct {
	FOV  float32 `yaml:"fov"` // vertical, degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Arcball Camera Cube",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,

			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			Eye:         [3]float32{0, 0, 6},
			Center:      [3]float32{0, 0, 0},
			Up:          [3]float32{0, 1, 0},
			MotionSpeed: 0.5,
			ZoomSpeed:   2,
			ZoomElapsed: 0.16,
		},
		Projection: ProjectionConfig{
			FOV:  65,
			Near: 1,
			Far:  200,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values the viewer cannot recover from at runtime.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.MotionSpeed < 0 || c.Camera.ZoomSpeed < 0 {
		errs = append(errs, errors.New("camera speeds must not be negative"))
	}
	if c.Camera.Eye == c.Camera.Center {
		errs = append(errs, errors.New("camera eye and center must differ"))
	}
	if c.Camera.Up == [3]float32{} {
		errs = append(errs, errors.New("camera up must not be zero"))
	}
	if c.Projection.FOV <= 0 || c.Projection.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180), got %v", c.Projection.FOV))
	}
	if c.Projection.Near <= 0 || c.Projection.Far <= c.Projection.Near {
		errs = append(errs, fmt.Errorf("need 0 < near < far, got near=%v far=%v", c.Projection.Near, c.Projection.Far))
	}
	return errors.Join(errs...)
}
