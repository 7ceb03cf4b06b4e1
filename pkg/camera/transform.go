package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/physics"
)

// Transform is a rigid pose. The camera looks down its local -Z axis.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// IdentityTransform is the pose at the origin looking down -Z
func IdentityTransform() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// GetTransform returns the component itself
func (t *Transform) GetTransform() *Transform { return t }

// Forward is the viewing direction
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// Up is the local vertical axis
func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}

// Right is the local horizontal axis
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// LookAt rotates the transform so Forward points at target. When the view
// direction is parallel to up, any axis orthogonal to up is used as right.
// A target at the translation leaves the rotation unchanged.
func (t *Transform) LookAt(target, up mgl64.Vec3) {
	forward, ok := physics.TryNormalize(target.Sub(t.Translation))
	if !ok {
		return
	}
	back := forward.Mul(-1)

	right, ok := physics.TryNormalize(up.Cross(back))
	if !ok {
		right = orthogonal(up)
	}
	newUp := back.Cross(right)

	basis := mgl64.Mat3FromCols(right, newUp, back)
	t.Rotation = mgl64.Mat4ToQuat(basis.Mat4()).Normalize()
}

// ViewMatrix is the world-to-view matrix
func (t Transform) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(t.Translation, t.Translation.Add(t.Forward()), t.Up())
}

// orthogonal returns a unit vector perpendicular to v
func orthogonal(v mgl64.Vec3) mgl64.Vec3 {
	n := physics.NormalizeOr(v, physics.Up)
	seed := physics.Right
	if math.Abs(n.X()) > 0.9 {
		seed = mgl64.Vec3{0, 0, 1}
	}
	return physics.NormalizeOr(seed.Sub(n.Mul(n.Dot(seed))), seed)
}
