// Package input polls SDL2 and converts its events into event.Event values.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/arcball/internal/engine/event"
)

// Input collects the events of one frame.
type Input struct {
	events []event.Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]event.Event, 0, 16),
	}
}

// Update drains the SDL queue. It returns true once a quit was requested.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, event.Event{Type: event.Quit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, event.Event{
					Type:   event.WindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 && e.Keysym.Sym != sdl.K_LEFT && e.Keysym.Sym != sdl.K_RIGHT &&
				e.Keysym.Sym != sdl.K_UP && e.Keysym.Sym != sdl.K_DOWN {
				continue
			}
			t := event.KeyDown
			if e.Type == sdl.KEYUP {
				t = event.KeyUp
			}
			i.events = append(i.events, event.Event{Type: t, Key: mapKey(e.Keysym.Sym)})

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, event.Event{
				Type:   event.MouseMove,
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
			})

		case *sdl.MouseButtonEvent:
			t := event.MouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				t = event.MouseUp
			}
			i.events = append(i.events, event.Event{
				Type:   t,
				Button: mapButton(e.Button),
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
			})

		case *sdl.MouseWheelEvent:
			y := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			i.events = append(i.events, event.Event{Type: event.MouseWheel, WheelY: y})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []event.Event {
	return i.events
}

func mapKey(k sdl.Keycode) event.Key {
	switch k {
	case sdl.K_ESCAPE:
		return event.KeyEscape
	case sdl.K_r:
		return event.KeyR
	case sdl.K_LEFT:
		return event.KeyArrowLeft
	case sdl.K_RIGHT:
		return event.KeyArrowRight
	case sdl.K_UP:
		return event.KeyArrowUp
	case sdl.K_DOWN:
		return event.KeyArrowDown
	case sdl.K_F12:
		return event.KeyF12
	}
	return event.KeyUnknown
}

func mapButton(b uint8) event.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return event.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return event.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return event.ButtonRight
	}
	return 0
}
