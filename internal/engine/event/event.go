// Package event defines window-system independent input events.
package event

// Type identifies the kind of input event.
type Type int

const (
	None Type = iota
	Quit
	WindowResize
	KeyDown
	KeyUp
	MouseMove
	MouseDown
	MouseUp
	MouseWheel
)

// Button is a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
)

// Key is a keyboard key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyR
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyF12
)

// Event is a processed input event. Pointer coordinates are in pixels with
// the origin at the top-left corner of the window.
type Event struct {
	Type   Type
	Key    Key
	Button Button
	Width  int
	Height int
	MouseX float32
	MouseY float32
	WheelY float32
}
