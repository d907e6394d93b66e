// Package math provides generic vector, quaternion and matrix types for 3D
// camera and rendering code.
//
// Every type is parameterised over Float so the same algorithms serve both
// float32 (GPU upload) and float64 (offline tooling). Conventions:
//   - Mat4 is column-major (OpenGL layout), a.Mul(b) is a*b and applies b first.
//   - Quat is {X, Y, Z, W} with W the scalar part; Mul is the Hamilton product.
//   - Coordinate systems are right-handed.
package math

import (
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Float is the scalar constraint shared by all types in this package.
type Float interface {
	constraints.Float
}

// Clamp restricts x to [lo, hi].
func Clamp[T Float](x, lo, hi T) T {
	return min(max(x, lo), hi)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite[T Float](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Radians converts degrees to radians.
func Radians[T Float](deg T) T {
	return deg * T(math.Pi) / 180
}

// Sqrt returns the square root of x.
// float32 goes through math32 to avoid the round trip via float64.
func Sqrt[T Float](x T) T {
	if f, ok := any(x).(float32); ok {
		return T(math32.Sqrt(f))
	}
	return T(math.Sqrt(float64(x)))
}

func sin[T Float](x T) T {
	if f, ok := any(x).(float32); ok {
		return T(math32.Sin(f))
	}
	return T(math.Sin(float64(x)))
}

func cos[T Float](x T) T {
	if f, ok := any(x).(float32); ok {
		return T(math32.Cos(f))
	}
	return T(math.Cos(float64(x)))
}

func tan[T Float](x T) T {
	if f, ok := any(x).(float32); ok {
		return T(math32.Tan(f))
	}
	return T(math.Tan(float64(x)))
}

func acos[T Float](x T) T {
	if f, ok := any(x).(float32); ok {
		return T(math32.Acos(f))
	}
	return T(math.Acos(float64(x)))
}

func abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
