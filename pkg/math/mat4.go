package math

import "errors"

// ErrSingularMatrix is returned when inverting a matrix whose determinant
// is zero or not finite.
var ErrSingularMatrix = errors.New("matrix is singular")

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4[T Float] [16]T

// Identity returns an identity matrix.
func Identity[T Float]() Mat4[T] {
	return Mat4[T]{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate[T Float](x, y, z T) Mat4[T] {
	return Mat4[T]{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// TranslateVec returns a translation matrix moving by v.
func TranslateVec[T Float](v Vec3[T]) Mat4[T] {
	return Translate(v.X, v.Y, v.Z)
}

// Scale returns a scale matrix.
func Scale[T Float](x, y, z T) Mat4[T] {
	return Mat4[T]{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis. angle is in radians.
func RotateX[T Float](angle T) Mat4[T] {
	c, s := cos(angle), sin(angle)
	return Mat4[T]{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis. angle is in radians.
func RotateY[T Float](angle T) Mat4[T] {
	c, s := cos(angle), sin(angle)
	return Mat4[T]{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix around the Z axis. angle is in radians.
func RotateZ[T Float](angle T) Mat4[T] {
	c, s := cos(angle), sin(angle)
	return Mat4[T]{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// LookAt returns a view matrix looking from eye to center with up direction.
// The camera looks down its local -Z axis.
func LookAt[T Float](eye, center, up Vec3[T]) Mat4[T] {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4[T]{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Perspective returns an OpenGL perspective projection matrix.
// fovY is in radians, aspect is width/height.
func Perspective[T Float](fovY, aspect, near, far T) Mat4[T] {
	f := 1 / tan(fovY/2)
	nf := 1 / (near - far)

	return Mat4[T]{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// At returns the element at row, col.
func (m Mat4[T]) At(row, col int) T {
	return m[col*4+row]
}

// Mul returns m * other. Applied to a point, other acts first.
func (m Mat4[T]) Mul(other Mat4[T]) Mat4[T] {
	var out Mat4[T]
	for col := 0; col < 4; col++ {
		b0, b1, b2, b3 := other[col*4], other[col*4+1], other[col*4+2], other[col*4+3]
		for row := 0; row < 4; row++ {
			out[col*4+row] = m[row]*b0 + m[4+row]*b1 + m[8+row]*b2 + m[12+row]*b3
		}
	}
	return out
}

// Transpose swaps rows and columns.
func (m Mat4[T]) Transpose() Mat4[T] {
	var out Mat4[T]
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// TransformPoint transforms a point (w=1), dividing by w when projective.
func (m Mat4[T]) TransformPoint(p Vec3[T]) Vec3[T] {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3[T]{x / w, y / w, z / w}
	}
	return Vec3[T]{x, y, z}
}

// TransformDirection transforms a direction (w=0), ignoring translation.
func (m Mat4[T]) TransformDirection(d Vec3[T]) Vec3[T] {
	return Vec3[T]{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Translation returns the translation column.
func (m Mat4[T]) Translation() Vec3[T] {
	return Vec3[T]{m[12], m[13], m[14]}
}

// ApproxEqual reports whether every element differs by at most tol.
func (m Mat4[T]) ApproxEqual(other Mat4[T], tol T) bool {
	for i := range m {
		if abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4[T]) Ptr() *T {
	return &m[0]
}

// Determinant returns det(m).
func (m Mat4[T]) Determinant() T {
	b := m.subDeterminants()
	return b.det()
}

// Inverse returns the inverse of m, or ErrSingularMatrix.
func (m Mat4[T]) Inverse() (Mat4[T], error) {
	b := m.subDeterminants()
	det := b.det()
	if det == 0 || !IsFinite(det) {
		return Mat4[T]{}, ErrSingularMatrix
	}
	inv := 1 / det

	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	return Mat4[T]{
		(a11*b[11] - a12*b[10] + a13*b[9]) * inv,
		(a02*b[10] - a01*b[11] - a03*b[9]) * inv,
		(a31*b[5] - a32*b[4] + a33*b[3]) * inv,
		(a22*b[4] - a21*b[5] - a23*b[3]) * inv,

		(a12*b[8] - a10*b[11] - a13*b[7]) * inv,
		(a00*b[11] - a02*b[8] + a03*b[7]) * inv,
		(a32*b[2] - a30*b[5] - a33*b[1]) * inv,
		(a20*b[5] - a22*b[2] + a23*b[1]) * inv,

		(a10*b[10] - a11*b[8] + a13*b[6]) * inv,
		(a01*b[8] - a00*b[10] - a03*b[6]) * inv,
		(a30*b[4] - a31*b[2] + a33*b[0]) * inv,
		(a21*b[2] - a20*b[4] - a23*b[0]) * inv,

		(a11*b[7] - a10*b[9] - a12*b[6]) * inv,
		(a00*b[9] - a01*b[7] + a02*b[6]) * inv,
		(a31*b[1] - a30*b[3] - a32*b[0]) * inv,
		(a20*b[3] - a21*b[1] + a22*b[0]) * inv,
	}, nil
}

// minors holds the twelve 2x2 sub-determinants shared by Determinant and
// Inverse: six from the first two columns, six from the last two.
type minors[T Float] [12]T

func (m Mat4[T]) subDeterminants() minors[T] {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	return minors[T]{
		a00*a11 - a01*a10,
		a00*a12 - a02*a10,
		a00*a13 - a03*a10,
		a01*a12 - a02*a11,
		a01*a13 - a03*a11,
		a02*a13 - a03*a12,
		a20*a31 - a21*a30,
		a20*a32 - a22*a30,
		a20*a33 - a23*a30,
		a21*a32 - a22*a31,
		a21*a33 - a23*a31,
		a22*a33 - a23*a32,
	}
}

func (b minors[T]) det() T {
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}
