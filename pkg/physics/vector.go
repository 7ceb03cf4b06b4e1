// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the squared length below which a vector is treated as degenerate
const Epsilon = 1e-12

var (
	// Up is the world vertical axis
	Up = mgl64.Vec3{0, 1, 0}
	// Right is the fallback direction used when a direction cannot be derived
	Right = mgl64.Vec3{1, 0, 0}
)

// TryNormalize returns the unit vector in the direction of v.
// ok is false when v is zero, too short or not finite.
func TryNormalize(v mgl64.Vec3) (unit mgl64.Vec3, ok bool) {
	lenSq := v.Dot(v)
	if lenSq < Epsilon || math.IsNaN(lenSq) || math.IsInf(lenSq, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / math.Sqrt(lenSq)), true
}

// NormalizeOr normalizes v or returns fallback when v is degenerate
func NormalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if unit, ok := TryNormalize(v); ok {
		return unit
	}
	return fallback
}

// Horizontal projects v onto the ground plane
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// RotateAbout rotates v by angle (radians) around a unit axis
func RotateAbout(v, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	return mgl64.QuatRotate(angle, axis).Rotate(v)
}

// RotateY rotates v by angle (radians) around the world vertical axis
func RotateY(v mgl64.Vec3, angle float64) mgl64.Vec3 {
	return RotateAbout(v, Up, angle)
}

