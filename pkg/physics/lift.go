package physics

import "github.com/go-gl/mathgl/mgl64"

// DefaultLiftGain is the spin-lift coefficient used when none is configured
const DefaultLiftGain = 0.01

// SpinLift returns the Magnus-type force k * (angular x linear).
// Zero spin, zero velocity or parallel vectors yield the zero force.
func SpinLift(linearVelocity, angularVelocity mgl64.Vec3, k float64) mgl64.Vec3 {
	return angularVelocity.Cross(linearVelocity).Mul(k)
}
