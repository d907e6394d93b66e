// Package replay runs scripted camera interactions without a window.
//
// A script describes the initial camera and a list of steps, each holding
// exactly one action (rotate, pan, zoom, resize or reset). Running a script
// yields the final camera state, which makes camera behaviour easy to
// reproduce and diff.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/arcball/pkg/math"
)

// ErrInvalidScript is wrapped by every validation error.
var ErrInvalidScript = errors.New("replay: invalid script")

// Script is a parsed replay file.
type Script struct {
	Camera CameraSpec `yaml:"camera"`
	Steps  []Step     `yaml:"steps"`
}

// CameraSpec describes the camera before the first step.
type CameraSpec struct {
	Eye         [3]float64 `yaml:"eye,flow"`
	Center      [3]float64 `yaml:"center,flow"`
	Up          [3]float64 `yaml:"up,flow"`
	MotionSpeed float64    `yaml:"motion_speed"`
	ZoomSpeed   float64    `yaml:"zoom_speed"`
	Screen      [2]float64 `yaml:"screen,flow"`
}

// Step is one scripted interaction. Exactly one field is set.
type Step struct {
	Rotate *RotateStep `yaml:"rotate,omitempty"`
	Pan    *PanStep    `yaml:"pan,omitempty"`
	Zoom   *ZoomStep   `yaml:"zoom,omitempty"`
	Resize *ResizeStep `yaml:"resize,omitempty"`
	Reset  bool        `yaml:"reset,omitempty"`
}

// RotateStep drags the pointer from From to To, in pixels.
type RotateStep struct {
	From [2]float64 `yaml:"from,flow"`
	To   [2]float64 `yaml:"to,flow"`
}

// PanStep moves the camera by a pointer delta in pixels.
type PanStep struct {
	Delta   [2]float64 `yaml:"delta,flow"`
	Elapsed float64    `yaml:"elapsed"`
}

// ZoomStep moves the camera along its view axis.
type ZoomStep struct {
	Amount  float64 `yaml:"amount"`
	Elapsed float64 `yaml:"elapsed"`
}

// ResizeStep changes the screen size used to map pointer positions.
type ResizeStep struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultCamera returns the camera used for fields a script leaves out.
func DefaultCamera() CameraSpec {
	return CameraSpec{
		Eye:         [3]float64{0, 0, 5},
		Center:      [3]float64{0, 0, 0},
		Up:          [3]float64{0, 1, 0},
		MotionSpeed: 1,
		ZoomSpeed:   1,
		Screen:      [2]float64{800, 600},
	}
}

// Action names the action a step performs, or "" when none is set.
func (s Step) Action() string {
	switch {
	case s.Rotate != nil:
		return "rotate"
	case s.Pan != nil:
		return "pan"
	case s.Zoom != nil:
		return "zoom"
	case s.Resize != nil:
		return "resize"
	case s.Reset:
		return "reset"
	}
	return ""
}

func (s Step) actionCount() int {
	n := 0
	if s.Rotate != nil {
		n++
	}
	if s.Pan != nil {
		n++
	}
	if s.Zoom != nil {
		n++
	}
	if s.Resize != nil {
		n++
	}
	if s.Reset {
		n++
	}
	return n
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML script and validates it. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	s := &Script{Camera: DefaultCamera()}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the camera block and that each step carries exactly one
// finite action.
func (s *Script) Validate() error {
	c := s.Camera
	if c.Eye == c.Center {
		return fmt.Errorf("%w: camera eye and center must differ", ErrInvalidScript)
	}
	if c.Up == [3]float64{} {
		return fmt.Errorf("%w: camera up must not be zero", ErrInvalidScript)
	}
	if !(c.Screen[0] > 0) || !(c.Screen[1] > 0) {
		return fmt.Errorf("%w: camera screen must be positive, got %vx%v", ErrInvalidScript, c.Screen[0], c.Screen[1])
	}
	if !finite(c.Eye[:]...) || !finite(c.Center[:]...) || !finite(c.Up[:]...) ||
		!finite(c.MotionSpeed, c.ZoomSpeed, c.Screen[0], c.Screen[1]) {
		return fmt.Errorf("%w: camera values must be finite", ErrInvalidScript)
	}

	for i, st := range s.Steps {
		switch n := st.actionCount(); {
		case n == 0:
			return fmt.Errorf("%w: step %d: no action", ErrInvalidScript, i)
		case n > 1:
			return fmt.Errorf("%w: step %d: %d actions, want exactly one", ErrInvalidScript, i, n)
		}
		if !st.finite() {
			return fmt.Errorf("%w: step %d: %s values must be finite", ErrInvalidScript, i, st.Action())
		}
		if r := st.Resize; r != nil && (!(r.Width > 0) || !(r.Height > 0)) {
			return fmt.Errorf("%w: step %d: resize must be positive, got %vx%v", ErrInvalidScript, i, r.Width, r.Height)
		}
	}
	return nil
}

func (s Step) finite() bool {
	switch {
	case s.Rotate != nil:
		return finite(s.Rotate.From[:]...) && finite(s.Rotate.To[:]...)
	case s.Pan != nil:
		return finite(s.Pan.Delta[0], s.Pan.Delta[1], s.Pan.Elapsed)
	case s.Zoom != nil:
		return finite(s.Zoom.Amount, s.Zoom.Elapsed)
	case s.Resize != nil:
		return finite(s.Resize.Width, s.Resize.Height)
	}
	return true
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if !math.IsFinite(x) {
			return false
		}
	}
	return true
}
