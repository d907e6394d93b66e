// Package camera implements a Shoemake arcball camera: pointer motion in
// pixel coordinates is mapped onto a virtual sphere to rotate the view, and
// pan/zoom are accumulated as camera-space translations.
//
// The camera is a plain value owned by one goroutine; callers that share it
// must synchronize access themselves.
package camera

import (
	"errors"
	"fmt"

	"github.com/Faultbox/arcball/pkg/math"
)

var (
	// ErrSingularView is returned (or panicked with) when a view matrix
	// cannot be inverted.
	ErrSingularView = errors.New("camera: view matrix is not invertible")

	// ErrInvalidScreen is returned for non-positive screen dimensions.
	ErrInvalidScreen = errors.New("camera: screen dimensions must be positive")
)

// Arcball is an orbit camera driven by pointer input.
//
// The view matrix is translation * baseView * rotation and is recomputed
// together with its inverse on every mutation, so View is a plain read.
type Arcball[T math.Float] struct {
	baseView    math.Mat4[T]
	translation math.Mat4[T]
	rotation    math.Quat[T]

	view        math.Mat4[T]
	inverseView math.Mat4[T]

	motionSpeed T
	zoomSpeed   T

	// 1/width, 1/height
	invScreen math.Vec2[T]
}

// New creates an arcball camera starting from baseView (usually a LookAt
// matrix). motionSpeed scales panning, zoomSpeed scales zooming and screen is
// the render surface size in pixels.
func New[T math.Float](baseView math.Mat4[T], motionSpeed, zoomSpeed T, screen math.Vec2[T]) (*Arcball[T], error) {
	if !(screen.X > 0) || !(screen.Y > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidScreen, screen.X, screen.Y)
	}
	inv, err := baseView.Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingularView, err)
	}

	return &Arcball[T]{
		baseView:    baseView,
		translation: math.Identity[T](),
		rotation:    math.QuatIdentity[T](),
		view:        baseView,
		inverseView: inv,
		motionSpeed: motionSpeed,
		zoomSpeed:   zoomSpeed,
		invScreen:   math.Vec2[T]{X: 1 / screen.X, Y: 1 / screen.Y},
	}, nil
}

// View returns the current view matrix.
func (c *Arcball[T]) View() math.Mat4[T] {
	return c.view
}

// InverseView returns the inverse of View, i.e. the camera-to-world transform.
func (c *Arcball[T]) InverseView() math.Mat4[T] {
	return c.inverseView
}

// BaseView returns the view the camera was constructed with.
func (c *Arcball[T]) BaseView() math.Mat4[T] {
	return c.baseView
}

// Rotation returns the accumulated rotation.
func (c *Arcball[T]) Rotation() math.Quat[T] {
	return c.rotation
}

// Translation returns the accumulated pan and zoom transform.
func (c *Arcball[T]) Translation() math.Mat4[T] {
	return c.translation
}

// Eye returns the camera position in world space.
func (c *Arcball[T]) Eye() math.Vec3[T] {
	return c.inverseView.Translation()
}

// Rotate turns the camera as if the pointer dragged a point on the arcball
// from mousePrev to mouseCur. Both positions are in pixels with Y growing
// downwards. Rotation does not depend on elapsed time.
func (c *Arcball[T]) Rotate(mousePrev, mouseCur math.Vec2[T]) {
	prev := ScreenToArcball(c.ScreenToBall(mousePrev))
	cur := ScreenToArcball(c.ScreenToBall(mouseCur))

	// cur * conj(prev) is the same rotation as cur * prev (they differ by
	// sign only) but is exactly the identity when prev == cur.
	delta := cur.Mul(prev.Conjugate())
	c.rotation = delta.Mul(c.rotation).Normalize()
	c.update()
}

// Pan moves the camera in its local X/Y plane. mouseDelta is the pointer
// movement in pixels; the caller picks the vertical sign convention.
func (c *Arcball[T]) Pan(mouseDelta math.Vec2[T], elapsed T) {
	motion := math.Vec3[T]{X: mouseDelta.X, Y: mouseDelta.Y}.Scale(c.motionSpeed * elapsed)
	c.translation = math.TranslateVec(motion).Mul(c.translation)
	c.update()
}

// Zoom moves the camera along its local Z axis. Positive amounts zoom in.
// There is no limit; zooming past the target is allowed.
func (c *Arcball[T]) Zoom(amount, elapsed T) {
	motion := math.Vec3[T]{Z: amount * c.zoomSpeed * elapsed}
	c.translation = math.TranslateVec(motion).Mul(c.translation)
	c.update()
}

// UpdateScreen must be called when the render surface is resized.
// Non-positive sizes are rejected and leave the camera unchanged.
func (c *Arcball[T]) UpdateScreen(width, height T) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidScreen, width, height)
	}
	c.invScreen = math.Vec2[T]{X: 1 / width, Y: 1 / height}
	return nil
}

// Reset drops all accumulated rotation, pan and zoom.
func (c *Arcball[T]) Reset() {
	c.translation = math.Identity[T]()
	c.rotation = math.QuatIdentity[T]()
	c.update()
}

// ScreenToBall maps a pixel position to [-1, 1]^2 with Y pointing up.
func (c *Arcball[T]) ScreenToBall(p math.Vec2[T]) math.Vec2[T] {
	return math.Vec2[T]{
		X: math.Clamp(p.X*2*c.invScreen.X-1, -1, 1),
		Y: math.Clamp(1-2*p.Y*c.invScreen.Y, -1, 1),
	}
}

// ScreenToArcball lifts a normalized screen point onto the unit sphere.
// Points outside the unit circle are pinned to its rim at zero depth.
// The result is a pure quaternion.
func ScreenToArcball[T math.Float](p math.Vec2[T]) math.Quat[T] {
	d := p.Dot(p)
	if d <= 1 {
		return math.PureQuat(math.Vec3[T]{X: p.X, Y: p.Y, Z: math.Sqrt(1 - d)})
	}
	u := p.Normalize()
	return math.PureQuat(math.Vec3[T]{X: u.X, Y: u.Y})
}

// update recomputes the cached view and its inverse. A failed inversion can
// only come from non-finite input and is treated as fatal.
func (c *Arcball[T]) update() {
	view := c.translation.Mul(c.baseView).Mul(c.rotation.ToMat4())
	inv, err := view.Inverse()
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrSingularView, err))
	}
	c.view = view
	c.inverseView = inv
}
