// Package viewer implements the interactive cube viewer main loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/arcball/internal/config"
	"github.com/Faultbox/arcball/internal/engine/control"
	"github.com/Faultbox/arcball/internal/engine/debug"
	"github.com/Faultbox/arcball/internal/engine/event"
	"github.com/Faultbox/arcball/internal/engine/input"
	"github.com/Faultbox/arcball/internal/engine/renderer"
	"github.com/Faultbox/arcball/internal/engine/window"
	"github.com/Faultbox/arcball/internal/logger"
	"github.com/Faultbox/arcball/pkg/camera"
	"github.com/Faultbox/arcball/pkg/math"
)

// keyStep is the pan distance in pixels for one arrow key press.
const keyStep = 20

// Viewer is the cube viewer instance.
type Viewer struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	camera     *camera.Arcball[float32]
	orbit      *control.Orbit
	projection math.Mat4f

	screenshots *debug.Screenshots
	capture     bool
}

// New creates the window, GL renderer and camera described by cfg.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		log:    logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after window: the GL context must exist.
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// Mouse events arrive in window coordinates, so the camera screen is the
	// window size rather than the drawable size.
	ww, wh := v.window.Size()
	base := math.LookAt(vec3(cfg.Camera.Eye), vec3(cfg.Camera.Center), vec3(cfg.Camera.Up))
	v.camera, err = camera.New(base, cfg.Camera.MotionSpeed, cfg.Camera.ZoomSpeed,
		math.Vec2f{X: float32(ww), Y: float32(wh)})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	v.orbit = control.NewOrbit(v.camera, control.Config{
		ZoomElapsed: cfg.Camera.ZoomElapsed,
		KeyStep:     keyStep,
	}, logger.Named("control"))
	v.input = input.New()
	v.screenshots = debug.NewScreenshots(cfg.Window.ScreenshotDir, "arcball")
	v.updateProjection(dw, dh)

	v.log.Info("viewer initialized")
	return v, nil
}

// Run runs the main loop until the window is closed or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		v.input.Update()
		for _, ev := range v.input.Events() {
			v.orbit.Handle(ev, float32(dt))
			switch {
			case ev.Type == event.WindowResize:
				dw, dh := v.window.DrawableSize()
				v.renderer.Resize(dw, dh)
				v.updateProjection(dw, dh)
			case ev.Type == event.KeyDown && ev.Key == event.KeyF12:
				v.capture = true
			}
		}
		if v.orbit.QuitRequested() {
			v.running = false
			break
		}

		v.renderer.Begin()
		v.renderer.DrawCube(v.projection.Mul(v.camera.View()))
		v.renderer.End()
		if v.capture {
			v.capture = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Stringer("eye", eyeStringer(v.camera.Eye())),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
		v.renderer = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}

func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.Save(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) updateProjection(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p := v.config.Projection
	aspect := float32(width) / float32(height)
	v.projection = math.Perspective(math.Radians(p.FOV), aspect, p.Near, p.Far)
}

func vec3(a [3]float32) math.Vec3f {
	return math.Vec3f{X: a[0], Y: a[1], Z: a[2]}
}

type eyeStringer math.Vec3f

func (e eyeStringer) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", e.X, e.Y, e.Z)
}
