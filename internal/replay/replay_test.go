package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/arcball/pkg/math"
)

const sampleScript = `
camera:
  eye: [0, 0, 5]
  center: [0, 0, 0]
  up: [0, 1, 0]
  motion_speed: 0.01
  zoom_speed: 1
  screen: [800, 600]
steps:
  - rotate: {from: [400, 300], to: [420, 310]}
  - pan: {delta: [10, -4], elapsed: 0.016}
  - zoom: {amount: 1, elapsed: 0.16}
  - resize: {width: 1024, height: 768}
  - reset: true
`

// Identity base view, unit speeds and a 100x100 screen.
const identityScript = `
camera:
  eye: [0, 0, 0]
  center: [0, 0, -1]
  up: [0, 1, 0]
  motion_speed: 1
  zoom_speed: 1
  screen: [100, 100]
steps:
  - rotate: {from: [50, 50], to: [50, 50]}
  - zoom: {amount: 1, elapsed: 1}
  - pan: {delta: [10, 0], elapsed: 1}
`

func assertMatNear(t *testing.T, want, got math.Mat4d) {
	t.Helper()
	assert.Truef(t, want.ApproxEqual(got, 1e-9), "matrices differ\nwant %v\ngot  %v", want, got)
}

func TestParseSample(t *testing.T) {
	s, err := Parse([]byte(sampleScript))
	require.NoError(t, err)

	assert.Equal(t, [3]float64{0, 0, 5}, s.Camera.Eye)
	assert.Equal(t, [3]float64{0, 1, 0}, s.Camera.Up)
	assert.Equal(t, 0.01, s.Camera.MotionSpeed)
	assert.Equal(t, [2]float64{800, 600}, s.Camera.Screen)

	require.Len(t, s.Steps, 5)
	var actions []string
	for _, st := range s.Steps {
		actions = append(actions, st.Action())
	}
	assert.Equal(t, []string{"rotate", "pan", "zoom", "resize", "reset"}, actions)

	assert.Equal(t, [2]float64{420, 310}, s.Steps[0].Rotate.To)
	assert.Equal(t, 0.016, s.Steps[1].Pan.Elapsed)
	assert.Equal(t, 1024.0, s.Steps[3].Resize.Width)
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - reset: true\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCamera(), s.Camera)

	s, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, s.Steps)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		contain string
	}{
		{
			name:    "step without action",
			script:  "steps:\n  - reset: true\n  - {}\n",
			contain: "step 1: no action",
		},
		{
			name:    "step with two actions",
			script:  "steps:\n  - {zoom: {amount: 1, elapsed: 1}, reset: true}\n",
			contain: "step 0: 2 actions",
		},
		{
			name:    "unknown action",
			script:  "steps:\n  - spin: {}\n",
			contain: "spin",
		},
		{
			name:    "eye equals center",
			script:  "camera:\n  eye: [1, 1, 1]\n  center: [1, 1, 1]\n",
			contain: "eye and center",
		},
		{
			name:    "zero up",
			script:  "camera:\n  up: [0, 0, 0]\n",
			contain: "up must not be zero",
		},
		{
			name:    "bad screen",
			script:  "camera:\n  screen: [0, 600]\n",
			contain: "screen must be positive",
		},
		{
			name:    "non-positive resize",
			script:  "steps:\n  - reset: true\n  - resize: {width: 0, height: 10}\n",
			contain: "step 1: resize must be positive",
		},
		{
			name:    "non-finite pan",
			script:  "steps:\n  - pan: {delta: [.inf, 0], elapsed: 1}\n",
			contain: "step 0: pan values must be finite",
		},
		{
			name:    "malformed yaml",
			script:  "steps: [",
			contain: "invalid script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.script))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidScript)
			assert.Contains(t, err.Error(), tt.contain)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunIdentityScenario(t *testing.T) {
	s, err := Parse([]byte(identityScript))
	require.NoError(t, err)

	res, err := Run(s, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Steps)
	assertMatNear(t, math.Translate[float64](10, 0, 1), res.View)
	assertMatNear(t, math.Translate[float64](-10, 0, -1), res.InverseView)
	assert.Equal(t, Quaternion{W: 1}, res.Rotation)
	assert.InDeltaSlice(t, []float64{-10, 0, -1}, res.Eye[:], 1e-9)
	assert.Nil(t, res.Snapshots)
}

func TestRunSnapshots(t *testing.T) {
	s, err := Parse([]byte(identityScript))
	require.NoError(t, err)

	res, err := Run(s, Options{Snapshots: true})
	require.NoError(t, err)
	require.Len(t, res.Snapshots, 3)

	assert.Equal(t, "zoom", res.Snapshots[1].Action)
	assert.Equal(t, 1, res.Snapshots[1].Index)
	assertMatNear(t, math.Translate[float64](0, 0, 1), res.Snapshots[1].View)
	assert.InDeltaSlice(t, []float64{0, 0, -1}, res.Snapshots[1].Eye[:], 1e-9)
	assert.Equal(t, res.View, res.Snapshots[2].View)
}

func TestRunResetRestoresBase(t *testing.T) {
	s, err := Parse([]byte(sampleScript))
	require.NoError(t, err)

	res, err := Run(s, Options{Snapshots: true})
	require.NoError(t, err)

	base := math.LookAt(math.Vec3d{Z: 5}, math.Vec3d{}, math.Vec3d{Y: 1})
	assertMatNear(t, base, res.View)
	assert.Equal(t, Quaternion{W: 1}, res.Rotation)
	assert.InDeltaSlice(t, []float64{0, 0, 5}, res.Eye[:], 1e-9)

	// The rotate step did move the camera before the reset.
	assert.False(t, res.Snapshots[0].View.ApproxEqual(base, 1e-6))
}

func TestRunResizeChangesRotation(t *testing.T) {
	rotate := Step{Rotate: &RotateStep{From: [2]float64{400, 300}, To: [2]float64{500, 300}}}

	narrow := &Script{Camera: DefaultCamera(), Steps: []Step{rotate}}
	wide := &Script{Camera: DefaultCamera(), Steps: []Step{
		{Resize: &ResizeStep{Width: 1600, Height: 600}},
		rotate,
	}}

	a, err := Run(narrow, Options{})
	require.NoError(t, err)
	b, err := Run(wide, Options{})
	require.NoError(t, err)

	assert.NotEqual(t, a.Rotation, b.Rotation)
	// A horizontal drag only turns about the Y axis.
	assert.InDelta(t, 0, a.Rotation.X, 1e-12)
	assert.InDelta(t, 0, b.Rotation.X, 1e-12)
	assert.Greater(t, a.Rotation.Y, b.Rotation.Y)
}

func TestRunRejectsBadCamera(t *testing.T) {
	spec := DefaultCamera()
	spec.Screen = [2]float64{-1, 10}

	_, err := Run(&Script{Camera: spec}, Options{})
	assert.Error(t, err)
}

func TestApplyWithoutAction(t *testing.T) {
	cam, err := NewCamera(DefaultCamera())
	require.NoError(t, err)
	assert.ErrorIs(t, Apply(cam, Step{}), ErrInvalidScript)
}

func TestWriteYAML(t *testing.T) {
	s, err := Parse([]byte(identityScript))
	require.NoError(t, err)
	res, err := Run(s, Options{Snapshots: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, res))

	var decoded Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, res.View, decoded.View)
	assert.Equal(t, res.Eye, decoded.Eye)
	assert.Len(t, decoded.Snapshots, 3)
}

func TestWriteTable(t *testing.T) {
	s, err := Parse([]byte(identityScript))
	require.NoError(t, err)
	res, err := Run(s, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "inverse view")
	assert.Contains(t, out, "10.000000")
	assert.Contains(t, out, "-10.000000")
}
