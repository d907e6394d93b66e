// Package control maps input events onto an arcball camera.
package control

import (
	"go.uber.org/zap"

	"github.com/Faultbox/arcball/internal/engine/event"
	"github.com/Faultbox/arcball/pkg/camera"
	"github.com/Faultbox/arcball/pkg/math"
)

// Camera is the part of camera.Arcball the controller drives.
type Camera interface {
	Rotate(mousePrev, mouseCur math.Vec2f)
	Pan(mouseDelta math.Vec2f, elapsed float32)
	Zoom(amount, elapsed float32)
	UpdateScreen(width, height float32) error
	Reset()
}

var _ Camera = (*camera.Arcball[float32])(nil)

// Config tunes the controller.
type Config struct {
	// ZoomElapsed is passed to Zoom for every wheel event.
	ZoomElapsed float32
	// KeyStep is the pan distance in pixels for one arrow key press.
	KeyStep float32
}

// Orbit drives a camera like a model viewer: left drag rotates, right or
// middle drag pans, the wheel zooms, R resets and Escape quits.
type Orbit struct {
	cam Camera
	cfg Config
	log *zap.Logger

	pressed  [4]bool // indexed by event.Button
	prev     math.Vec2f
	havePrev bool
	quit     bool
}

// NewOrbit creates a controller for cam.
func NewOrbit(cam Camera, cfg Config, log *zap.Logger) *Orbit {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orbit{cam: cam, cfg: cfg, log: log}
}

// QuitRequested reports whether a quit or Escape event was seen.
func (o *Orbit) QuitRequested() bool {
	return o.quit
}

// Dragging reports whether any tracked button is held.
func (o *Orbit) Dragging() bool {
	return o.pressed[event.ButtonLeft] || o.pressed[event.ButtonMiddle] || o.pressed[event.ButtonRight]
}

// Handle applies one event. elapsed is the frame time in seconds and scales
// panning.
func (o *Orbit) Handle(ev event.Event, elapsed float32) {
	switch ev.Type {
	case event.Quit:
		o.quit = true

	case event.KeyDown:
		o.handleKey(ev.Key, elapsed)

	case event.WindowResize:
		if err := o.cam.UpdateScreen(float32(ev.Width), float32(ev.Height)); err != nil {
			o.log.Warn("ignoring resize", zap.Error(err))
			return
		}
		o.log.Debug("screen resized", zap.Int("width", ev.Width), zap.Int("height", ev.Height))

	case event.MouseDown:
		if int(ev.Button) < len(o.pressed) {
			o.pressed[ev.Button] = true
		}
		o.setPrev(ev)

	case event.MouseUp:
		if int(ev.Button) < len(o.pressed) {
			o.pressed[ev.Button] = false
		}
		o.setPrev(ev)

	case event.MouseMove:
		cur := math.Vec2f{X: ev.MouseX, Y: ev.MouseY}
		if !o.havePrev {
			o.setPrev(ev)
			return
		}
		switch {
		case o.pressed[event.ButtonLeft]:
			o.cam.Rotate(o.prev, cur)
		case o.pressed[event.ButtonRight], o.pressed[event.ButtonMiddle]:
			// Screen Y grows downwards; flip it so the scene follows the pointer.
			d := cur.Sub(o.prev)
			o.cam.Pan(math.Vec2f{X: d.X, Y: -d.Y}, elapsed)
		}
		o.prev = cur

	case event.MouseWheel:
		if ev.WheelY != 0 {
			o.cam.Zoom(ev.WheelY, o.cfg.ZoomElapsed)
		}
	}
}

func (o *Orbit) handleKey(key event.Key, elapsed float32) {
	step := o.cfg.KeyStep
	switch key {
	case event.KeyEscape:
		o.quit = true
	case event.KeyR:
		o.cam.Reset()
		o.log.Debug("camera reset")
	case event.KeyArrowLeft:
		o.cam.Pan(math.Vec2f{X: -step}, elapsed)
	case event.KeyArrowRight:
		o.cam.Pan(math.Vec2f{X: step}, elapsed)
	case event.KeyArrowUp:
		o.cam.Pan(math.Vec2f{Y: step}, elapsed)
	case event.KeyArrowDown:
		o.cam.Pan(math.Vec2f{Y: -step}, elapsed)
	}
}

func (o *Orbit) setPrev(ev event.Event) {
	o.prev = math.Vec2f{X: ev.MouseX, Y: ev.MouseY}
	o.havePrev = true
}
