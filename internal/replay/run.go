package replay

import (
	"fmt"

	"github.com/Faultbox/arcball/pkg/camera"
	"github.com/Faultbox/arcball/pkg/math"
)

// Options controls what Run records.
type Options struct {
	// Snapshots records the camera state after every step.
	Snapshots bool
}

// Result is the camera state after a script ran.
type Result struct {
	Steps       int        `yaml:"steps"`
	View        math.Mat4d `yaml:"view,flow"`
	InverseView math.Mat4d `yaml:"inverse_view,flow"`
	Rotation    Quaternion `yaml:"rotation"`
	Eye         [3]float64 `yaml:"eye,flow"`
	Snapshots   []Snapshot `yaml:"snapshots,omitempty"`
}

// Snapshot is the camera state right after one step.
type Snapshot struct {
	Index  int        `yaml:"index"`
	Action string     `yaml:"action"`
	View   math.Mat4d `yaml:"view,flow"`
	Eye    [3]float64 `yaml:"eye,flow"`
}

// Quaternion is the YAML form of a rotation.
type Quaternion struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	W float64 `yaml:"w"`
}

// NewCamera builds the camera described by spec.
func NewCamera(spec CameraSpec) (*camera.Arcball[float64], error) {
	base := math.LookAt(vec3(spec.Eye), vec3(spec.Center), vec3(spec.Up))
	return camera.New(base, spec.MotionSpeed, spec.ZoomSpeed,
		math.Vec2d{X: spec.Screen[0], Y: spec.Screen[1]})
}

// Run builds the script's camera and applies every step in order.
func Run(s *Script, opts Options) (res *Result, err error) {
	cam, err := NewCamera(s.Camera)
	if err != nil {
		return nil, fmt.Errorf("create camera: %w", err)
	}

	res = &Result{}
	step := -1
	defer func() {
		// The camera panics only when its state stops being invertible.
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("step %d: %v", step, r)
		}
	}()

	for i, st := range s.Steps {
		step = i
		if err := Apply(cam, st); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if opts.Snapshots {
			res.Snapshots = append(res.Snapshots, Snapshot{
				Index:  i,
				Action: st.Action(),
				View:   cam.View(),
				Eye:    cam.Eye().Array(),
			})
		}
	}

	q := cam.Rotation()
	res.Steps = len(s.Steps)
	res.View = cam.View()
	res.InverseView = cam.InverseView()
	res.Rotation = Quaternion{X: q.X, Y: q.Y, Z: q.Z, W: q.W}
	res.Eye = cam.Eye().Array()
	return res, nil
}

// Apply performs a single step on cam.
func Apply(cam *camera.Arcball[float64], st Step) error {
	switch {
	case st.Rotate != nil:
		cam.Rotate(vec2(st.Rotate.From), vec2(st.Rotate.To))
	case st.Pan != nil:
		cam.Pan(vec2(st.Pan.Delta), st.Pan.Elapsed)
	case st.Zoom != nil:
		cam.Zoom(st.Zoom.Amount, st.Zoom.Elapsed)
	case st.Resize != nil:
		return cam.UpdateScreen(st.Resize.Width, st.Resize.Height)
	case st.Reset:
		cam.Reset()
	default:
		return fmt.Errorf("%w: no action", ErrInvalidScript)
	}
	return nil
}

func vec2(a [2]float64) math.Vec2d {
	return math.Vec2d{X: a[0], Y: a[1]}
}

func vec3(a [3]float64) math.Vec3d {
	return math.Vec3d{X: a[0], Y: a[1], Z: a[2]}
}
