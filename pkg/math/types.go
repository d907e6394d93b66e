package math

// Single precision aliases used by GPU-facing code.
type (
	Vec2f = Vec2[float32]
	Vec3f = Vec3[float32]
	Quatf = Quat[float32]
	Mat4f = Mat4[float32]
)

// Double precision aliases used by offline tooling.
type (
	Vec2d = Vec2[float64]
	Vec3d = Vec3[float64]
	Quatd = Quat[float64]
	Mat4d = Mat4[float64]
)
