package math

// Vec2 is a 2D vector.
type Vec2[T Float] struct {
	X, Y T
}

// Add returns v + other.
func (v Vec2[T]) Add(other Vec2[T]) Vec2[T] {
	return Vec2[T]{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2[T]) Sub(other Vec2[T]) Vec2[T] {
	return Vec2[T]{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * s.
func (v Vec2[T]) Scale(s T) Vec2[T] {
	return Vec2[T]{v.X * s, v.Y * s}
}

// Neg returns -v.
func (v Vec2[T]) Neg() Vec2[T] {
	return Vec2[T]{-v.X, -v.Y}
}

// Dot returns the dot product.
func (v Vec2[T]) Dot(other Vec2[T]) T {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2[T]) Length() T {
	return Sqrt(v.Dot(v))
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec2[T]) Normalize() Vec2[T] {
	l := v.Length()
	if l == 0 {
		return Vec2[T]{}
	}
	return Vec2[T]{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2[T]) Distance(other Vec2[T]) T {
	return v.Sub(other).Length()
}
