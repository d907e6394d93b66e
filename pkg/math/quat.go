package math

// Quat is a quaternion. X, Y, Z hold the vector part and W the scalar part.
// Unit quaternions represent rotations.
type Quat[T Float] struct {
	X, Y, Z, W T
}

// QuatIdentity returns the identity quaternion (no rotation).
func QuatIdentity[T Float]() Quat[T] {
	return Quat[T]{W: 1}
}

// PureQuat returns the quaternion with vector part v and zero scalar part.
func PureQuat[T Float](v Vec3[T]) Quat[T] {
	return Quat[T]{X: v.X, Y: v.Y, Z: v.Z}
}

// QuatFromAxisAngle creates a rotation of angle radians around axis.
// axis should be normalized.
func QuatFromAxisAngle[T Float](axis Vec3[T], angle T) Quat[T] {
	s := sin(angle / 2)
	return Quat[T]{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: cos(angle / 2),
	}
}

// Vec returns the vector part.
func (q Quat[T]) Vec() Vec3[T] {
	return Vec3[T]{q.X, q.Y, q.Z}
}

// Conjugate negates the vector part. For unit quaternions this is the inverse.
func (q Quat[T]) Conjugate() Quat[T] {
	return Quat[T]{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Dot returns the 4D dot product.
func (q Quat[T]) Dot(other Quat[T]) T {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Length returns the norm |q|.
func (q Quat[T]) Length() T {
	return Sqrt(q.Dot(q))
}

// Normalize returns q scaled to unit length.
// A near-zero quaternion normalizes to the identity.
func (q Quat[T]) Normalize() Quat[T] {
	l := q.Length()
	if l < 1e-6 {
		return QuatIdentity[T]()
	}
	inv := 1 / l
	return Quat[T]{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Mul returns the Hamilton product q*other. As a rotation it applies other
// first, then q.
func (q Quat[T]) Mul(other Quat[T]) Quat[T] {
	return Quat[T]{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to v (q v q*).
func (q Quat[T]) Rotate(v Vec3[T]) Vec3[T] {
	return q.Mul(PureQuat(v)).Mul(q.Conjugate()).Vec()
}

// Lerp blends linearly and renormalizes. Prefer Slerp for rotations.
func (q Quat[T]) Lerp(other Quat[T], t T) Quat[T] {
	return Quat[T]{
		X: q.X + t*(other.X-q.X),
		Y: q.Y + t*(other.Y-q.Y),
		Z: q.Z + t*(other.Z-q.Z),
		W: q.W + t*(other.W-q.W),
	}.Normalize()
}

// Slerp performs spherical linear interpolation along the shorter arc.
// t should be in range [0, 1].
func (q Quat[T]) Slerp(other Quat[T], t T) Quat[T] {
	d := q.Dot(other)
	if d < 0 {
		other = Quat[T]{X: -other.X, Y: -other.Y, Z: -other.Z, W: -other.W}
		d = -d
	}

	// Nearly parallel: sin(theta0) is close to zero.
	if d > 0.9995 {
		return q.Lerp(other, t)
	}

	theta0 := acos(d)
	theta := theta0 * t
	sinTheta := sin(theta)
	sinTheta0 := sin(theta0)

	s0 := cos(theta) - d*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quat[T]{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}

// ToMat4 converts the (normalized) rotation to a 4x4 matrix.
func (q Quat[T]) ToMat4() Mat4[T] {
	q = q.Normalize()

	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return Mat4[T]{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
