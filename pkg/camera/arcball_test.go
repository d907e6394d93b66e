package camera

import (
	gomath "math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/arcball/pkg/math"
)

func assertMatNear[T math.Float](t *testing.T, want, got math.Mat4[T], tol T) {
	t.Helper()
	assert.Truef(t, want.ApproxEqual(got, tol), "matrices differ\nwant %v\ngot  %v", want, got)
}

func assertQuatNear[T math.Float](t *testing.T, want, got math.Quat[T], tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X")
	assert.InDelta(t, want.Y, got.Y, tol, "Y")
	assert.InDelta(t, want.Z, got.Z, tol, "Z")
	assert.InDelta(t, want.W, got.W, tol, "W")
}

func lookAtBase() math.Mat4d {
	return math.LookAt(math.Vec3d{X: 1, Y: 2, Z: 5}, math.Vec3d{}, math.Vec3d{Y: 1})
}

func newTestCamera(t *testing.T) *Arcball[float64] {
	t.Helper()
	c, err := New(lookAtBase(), 0.5, 2, math.Vec2d{X: 800, Y: 600})
	require.NoError(t, err)
	return c
}

func TestNewViewEqualsBase(t *testing.T) {
	base := lookAtBase()
	c, err := New(base, 1, 1, math.Vec2d{X: 640, Y: 480})
	require.NoError(t, err)

	assert.Equal(t, base, c.View())
	assert.Equal(t, base, c.BaseView())
	assert.Equal(t, math.Identity[float64](), c.Translation())
	assert.Equal(t, math.QuatIdentity[float64](), c.Rotation())

	want, err := base.Inverse()
	require.NoError(t, err)
	assert.Equal(t, want, c.InverseView())
	assertMatNear(t, math.Identity[float64](), c.View().Mul(c.InverseView()), 1e-12)
}

func TestNewErrors(t *testing.T) {
	_, err := New(math.Scale[float32](1, 1, 0), 1, 1, math.Vec2f{X: 10, Y: 10})
	assert.ErrorIs(t, err, ErrSingularView)
	assert.ErrorIs(t, err, math.ErrSingularMatrix)

	for _, screen := range []math.Vec2f{{X: 0, Y: 10}, {X: 10, Y: 0}, {X: -5, Y: 10}, {X: float32(gomath.NaN()), Y: 1}} {
		_, err := New(math.Identity[float32](), 1, 1, screen)
		assert.ErrorIs(t, err, ErrInvalidScreen, "screen %v", screen)
	}
}

func TestRotateSamePointIsIdentity(t *testing.T) {
	c := newTestCamera(t)
	c.Rotate(math.Vec2d{X: 100, Y: 100}, math.Vec2d{X: 300, Y: 250})
	c.Pan(math.Vec2d{X: 3, Y: -2}, 1)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		rot, view := c.Rotation(), c.View()

		// Includes points outside the screen, which clamp to the rim.
		p := math.Vec2d{X: rng.Float64()*1000 - 100, Y: rng.Float64()*800 - 100}
		c.Rotate(p, p)

		assertQuatNear(t, rot, c.Rotation(), 1e-12)
		assertMatNear(t, view, c.View(), 1e-12)
	}
}

func TestRotationStaysUnit(t *testing.T) {
	c, err := New(math.Identity[float32](), 1, 1, math.Vec2f{X: 1024, Y: 768})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	prev := math.Vec2f{X: 512, Y: 384}
	for i := 0; i < 5000; i++ {
		cur := math.Vec2f{X: rng.Float32() * 1024, Y: rng.Float32() * 768}
		c.Rotate(prev, cur)
		prev = cur

		require.InDelta(t, 1, c.Rotation().Length(), 1e-5, "step %d", i)
	}
	assertMatNear(t, math.Identity[float32](), c.View().Mul(c.InverseView()), 1e-4)
}

func TestRotateDirection(t *testing.T) {
	c, err := New(math.Identity[float64](), 1, 1, math.Vec2d{X: 100, Y: 100})
	require.NoError(t, err)

	// Dragging right from the center turns the scene about +Y.
	c.Rotate(math.Vec2d{X: 50, Y: 50}, math.Vec2d{X: 75, Y: 50})
	q := c.Rotation()
	assert.InDelta(t, 0, q.X, 1e-12)
	assert.InDelta(t, 0, q.Z, 1e-12)
	assert.Greater(t, q.Y, 0.0)

	// The front of the scene (+Z) moves to the right.
	front := c.View().TransformPoint(math.Vec3d{Z: 1})
	assert.Greater(t, front.X, 0.0)

	// Dragging up from the center turns the scene about -X.
	c.Reset()
	c.Rotate(math.Vec2d{X: 50, Y: 50}, math.Vec2d{X: 50, Y: 25})
	q = c.Rotation()
	assert.Less(t, q.X, 0.0)
	assert.InDelta(t, 0, q.Y, 1e-12)
	assert.InDelta(t, 0, q.Z, 1e-12)
}

func TestRotateAngle(t *testing.T) {
	c, err := New(math.Identity[float64](), 1, 1, math.Vec2d{X: 200, Y: 200})
	require.NoError(t, err)

	// Center to the rim is a quarter turn on the sphere, which the arcball
	// doubles into a half turn.
	c.Rotate(math.Vec2d{X: 100, Y: 100}, math.Vec2d{X: 200, Y: 100})
	q := c.Rotation()
	assert.InDelta(t, 0, q.W, 1e-12)
	assert.InDelta(t, 1, q.Y, 1e-12)
}

func TestRotateIgnoresSpeeds(t *testing.T) {
	slow, err := New(lookAtBase(), 0.01, 0.01, math.Vec2d{X: 800, Y: 600})
	require.NoError(t, err)
	fast, err := New(lookAtBase(), 10, 10, math.Vec2d{X: 800, Y: 600})
	require.NoError(t, err)

	from, to := math.Vec2d{X: 120, Y: 80}, math.Vec2d{X: 500, Y: 420}
	slow.Rotate(from, to)
	fast.Rotate(from, to)

	assert.Equal(t, slow.Rotation(), fast.Rotation())
	assert.Equal(t, slow.View(), fast.View())
}

func TestScreenToArcball(t *testing.T) {
	tests := []struct {
		name string
		p    math.Vec2d
		want math.Quatd
	}{
		{"center", math.Vec2d{}, math.Quatd{Z: 1}},
		{"inside", math.Vec2d{X: 0.6}, math.Quatd{X: 0.6, Z: 0.8}},
		{"on rim", math.Vec2d{Y: -1}, math.Quatd{Y: -1}},
		{"outside", math.Vec2d{X: 1, Y: 1}, math.Quatd{X: gomath.Sqrt2 / 2, Y: gomath.Sqrt2 / 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenToArcball(tt.p)
			assertQuatNear(t, tt.want, got, 1e-12)
			assert.InDelta(t, 1, got.Length(), 1e-12)
			assert.Zero(t, got.W)
		})
	}
}

func TestScreenToArcballContinuousAtRim(t *testing.T) {
	for _, eps := range []float64{1e-3, 1e-6, 1e-9} {
		inside := ScreenToArcball(math.Vec2d{X: 1 - eps})
		outside := ScreenToArcball(math.Vec2d{X: 1 + eps})

		assert.InDelta(t, 0, inside.Z, 2*gomath.Sqrt(eps), "eps %v", eps)
		assert.Zero(t, outside.Z)
		assert.InDelta(t, inside.X, outside.X, 2*eps, "eps %v", eps)
	}
}

func TestScreenToBall(t *testing.T) {
	c, err := New(math.Identity[float64](), 1, 1, math.Vec2d{X: 200, Y: 100})
	require.NoError(t, err)

	tests := []struct {
		pixel, want math.Vec2d
	}{
		{math.Vec2d{X: 100, Y: 50}, math.Vec2d{}},
		{math.Vec2d{X: 0, Y: 0}, math.Vec2d{X: -1, Y: 1}},
		{math.Vec2d{X: 200, Y: 100}, math.Vec2d{X: 1, Y: -1}},
		{math.Vec2d{X: 150, Y: 25}, math.Vec2d{X: 0.5, Y: 0.5}},
		{math.Vec2d{X: -50, Y: 400}, math.Vec2d{X: -1, Y: -1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.ScreenToBall(tt.pixel), "pixel %v", tt.pixel)
	}
}

func TestPanIsInvertible(t *testing.T) {
	c := newTestCamera(t)
	c.Rotate(math.Vec2d{X: 400, Y: 300}, math.Vec2d{X: 450, Y: 280})

	zoomOnly := newTestCamera(t)
	zoomOnly.Rotate(math.Vec2d{X: 400, Y: 300}, math.Vec2d{X: 450, Y: 280})
	zoomOnly.Zoom(3, 0.5)

	delta := math.Vec2d{X: 17, Y: -9}
	c.Pan(delta, 0.25)
	c.Zoom(3, 0.5)
	c.Pan(delta.Neg(), 0.25)

	assertMatNear(t, zoomOnly.Translation(), c.Translation(), 1e-12)
	assertMatNear(t, zoomOnly.View(), c.View(), 1e-12)
}

func TestPanMovesInCameraPlane(t *testing.T) {
	c := newTestCamera(t)
	c.Rotate(math.Vec2d{X: 200, Y: 100}, math.Vec2d{X: 600, Y: 500})

	world := math.Vec3d{X: 0.3, Y: -1, Z: 2}
	before := c.View().TransformPoint(world)
	c.Pan(math.Vec2d{X: 4, Y: 6}, 0.5)
	after := c.View().TransformPoint(world)

	// motion = (4, 6, 0) * motionSpeed(0.5) * elapsed(0.5)
	moved := after.Sub(before)
	assert.InDelta(t, 1.0, moved.X, 1e-12)
	assert.InDelta(t, 1.5, moved.Y, 1e-12)
	assert.InDelta(t, 0.0, moved.Z, 1e-12)
}

func TestZoomMovesAlongViewAxis(t *testing.T) {
	c := newTestCamera(t)
	c.Rotate(math.Vec2d{X: 200, Y: 100}, math.Vec2d{X: 600, Y: 500})

	world := math.Vec3d{X: -2, Y: 1, Z: 0.5}
	before := c.View().TransformPoint(world)
	c.Zoom(-1.5, 0.1)
	after := c.View().TransformPoint(world)

	// motion = (0, 0, -1.5) * zoomSpeed(2) * elapsed(0.1)
	moved := after.Sub(before)
	assert.InDelta(t, 0.0, moved.X, 1e-12)
	assert.InDelta(t, 0.0, moved.Y, 1e-12)
	assert.InDelta(t, -0.3, moved.Z, 1e-12)
}

func TestZoomIsUnbounded(t *testing.T) {
	c, err := New(math.LookAt(math.Vec3d{Z: 5}, math.Vec3d{}, math.Vec3d{Y: 1}), 1, 1, math.Vec2d{X: 10, Y: 10})
	require.NoError(t, err)

	c.Zoom(1, 1)
	assert.InDelta(t, 4, c.Eye().Z, 1e-12)

	// Straight through the target and out the other side.
	c.Zoom(7, 1)
	assert.InDelta(t, -3, c.Eye().Z, 1e-12)
}

func TestEye(t *testing.T) {
	eye := math.Vec3d{X: 1, Y: 2, Z: 5}
	c := newTestCamera(t)
	assert.InDelta(t, 0, c.Eye().Distance(eye), 1e-12)

	// Rotation orbits around the target, keeping the distance.
	c.Rotate(math.Vec2d{X: 100, Y: 300}, math.Vec2d{X: 700, Y: 200})
	assert.InDelta(t, eye.Length(), c.Eye().Length(), 1e-9)
}

func TestUpdateScreenChangesRotation(t *testing.T) {
	a := newTestCamera(t)
	b := newTestCamera(t)
	require.NoError(t, b.UpdateScreen(1600, 900))

	viewBefore := b.View()

	from, to := math.Vec2d{X: 100, Y: 120}, math.Vec2d{X: 300, Y: 200}
	a.Rotate(from, to)
	b.Rotate(from, to)

	assert.NotEqual(t, a.Rotation(), b.Rotation())
	assert.False(t, a.View().ApproxEqual(b.View(), 1e-6))
	assert.NotEqual(t, viewBefore, b.View())
}

func TestUpdateScreenDoesNotTouchView(t *testing.T) {
	c := newTestCamera(t)
	c.Rotate(math.Vec2d{X: 10, Y: 10}, math.Vec2d{X: 20, Y: 40})
	view := c.View()

	require.NoError(t, c.UpdateScreen(320, 240))
	assert.Equal(t, view, c.View())
}

func TestUpdateScreenRejectsNonPositive(t *testing.T) {
	c := newTestCamera(t)
	from, to := math.Vec2d{X: 100, Y: 120}, math.Vec2d{X: 300, Y: 200}

	ref := newTestCamera(t)
	ref.Rotate(from, to)

	assert.ErrorIs(t, c.UpdateScreen(0, 600), ErrInvalidScreen)
	assert.ErrorIs(t, c.UpdateScreen(800, -1), ErrInvalidScreen)

	// Still normalizing against 800x600.
	c.Rotate(from, to)
	assert.Equal(t, ref.Rotation(), c.Rotation())
}

func TestReset(t *testing.T) {
	c := newTestCamera(t)
	c.Rotate(math.Vec2d{X: 10, Y: 10}, math.Vec2d{X: 500, Y: 400})
	c.Pan(math.Vec2d{X: 5, Y: 5}, 1)
	c.Zoom(2, 1)

	c.Reset()
	assert.Equal(t, math.QuatIdentity[float64](), c.Rotation())
	assert.Equal(t, math.Identity[float64](), c.Translation())
	assertMatNear(t, lookAtBase(), c.View(), 1e-12)
}

func TestNonFiniteInputPanics(t *testing.T) {
	c := newTestCamera(t)
	assert.Panics(t, func() {
		c.Zoom(1, gomath.Inf(1))
	})
}

// Identity base, unit speeds, 100x100 screen.
func TestScenario(t *testing.T) {
	c, err := New(math.Identity[float32](), 1, 1, math.Vec2f{X: 100, Y: 100})
	require.NoError(t, err)

	c.Rotate(math.Vec2f{X: 50, Y: 50}, math.Vec2f{X: 50, Y: 50})
	assertMatNear(t, math.Identity[float32](), c.View(), 1e-6)

	c.Zoom(1.0, 1.0)
	assertMatNear(t, math.Translate[float32](0, 0, 1), c.View(), 1e-6)

	c.Pan(math.Vec2f{X: 10, Y: 0}, 1.0)
	assertMatNear(t, math.Translate[float32](10, 0, 1), c.View(), 1e-6)
	assertMatNear(t, math.Translate[float32](-10, 0, -1), c.InverseView(), 1e-6)
}
