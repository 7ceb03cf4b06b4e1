// Package camera implements a third-person orbit camera that follows a
// physics body and is steered by mouse motion and scroll.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/physics"
)

// Defaults for a new orbit camera
const (
	DefaultDistance         = 10.0
	DefaultMinDistance      = 1.0
	DefaultYawSensitivity   = 400.0
	DefaultPitchSensitivity = 100.0
)

// DefaultOrientation points from the target straight up to the camera
var DefaultOrientation = mgl64.Vec3{0, 1, 0}

// OrbitCamera is the spherical state of a follow camera: a unit direction
// from the target to the camera and a distance along it.
type OrbitCamera struct {
	Orientation mgl64.Vec3
	Distance    float64

	// Distance is clamped to [MinDistance, MaxDistance]; MaxDistance 0 is unbounded
	MinDistance float64
	MaxDistance float64

	// Mouse pixels per radian
	YawSensitivity   float64
	PitchSensitivity float64

	followed  physics.Handle
	following bool
}

// NewOrbitCamera creates a camera with the default state and no target
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Orientation:      DefaultOrientation,
		Distance:         DefaultDistance,
		MinDistance:      DefaultMinDistance,
		YawSensitivity:   DefaultYawSensitivity,
		PitchSensitivity: DefaultPitchSensitivity,
	}
}

// GetOrbitCamera returns the component itself
func (c *OrbitCamera) GetOrbitCamera() *OrbitCamera { return c }

// Follow sets the target body
func (c *OrbitCamera) Follow(h physics.Handle) {
	c.followed, c.following = h, true
}

// Unfollow drops the target body
func (c *OrbitCamera) Unfollow() {
	c.followed, c.following = 0, false
}

// Followed returns the target body
func (c *OrbitCamera) Followed() (physics.Handle, bool) {
	return c.followed, c.following
}

// ApplyMouse zooms by scroll.y, yaws about world Y by -motion.x and then
// pitches about the horizontal axis of the yawed orientation by motion.y.
func (c *OrbitCamera) ApplyMouse(motion, scroll mgl64.Vec2) {
	c.Distance -= scroll.Y()
	c.clampDistance()

	o := physics.RotateY(c.Orientation, -motion.X()/c.YawSensitivity)

	axis := physics.NormalizeOr(o.Cross(physics.Up), physics.Right)
	o = physics.RotateAbout(o, axis, motion.Y()/c.PitchSensitivity)

	c.Orientation = physics.NormalizeOr(o, DefaultOrientation)
}

func (c *OrbitCamera) clampDistance() {
	if c.MaxDistance > 0 && c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
}

// Pose places the camera on its sphere around target, looking at it with
// world Y as up.
func (c *OrbitCamera) Pose(target mgl64.Vec3) Transform {
	t := Transform{
		Translation: target.Add(c.Orientation.Mul(c.Distance)),
		Rotation:    mgl64.QuatIdent(),
	}
	t.LookAt(target, physics.Up)
	return t
}
