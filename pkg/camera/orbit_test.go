package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/go-magnus/pkg/physics"
)

func assertVec(t *testing.T, expected, actual mgl64.Vec3) {
	t.Helper()
	for i := range expected {
		assert.InDeltaf(t, expected[i], actual[i], 1e-9, "component %d: expected %v, got %v", i, expected, actual)
	}
}

func TestNewOrbitCamera_Defaults(t *testing.T) {
	c := NewOrbitCamera()

	assert.Equal(t, mgl64.Vec3{0, 1, 0}, c.Orientation)
	assert.Equal(t, 10.0, c.Distance)
	_, ok := c.Followed()
	assert.False(t, ok)
}

func TestOrbitCamera_FollowUnfollow(t *testing.T) {
	c := NewOrbitCamera()
	c.Follow(4)
	h, ok := c.Followed()
	assert.True(t, ok)
	assert.Equal(t, physics.Handle(4), h)

	c.Unfollow()
	_, ok = c.Followed()
	assert.False(t, ok)
}

func TestOrbitCamera_ApplyMouse(t *testing.T) {
	tests := []struct {
		name         string
		orientation  mgl64.Vec3
		motion       mgl64.Vec2
		expected     mgl64.Vec3
		expectedDist float64
	}{
		{
			name:         "no input",
			orientation:  mgl64.Vec3{0, 1, 0},
			expected:     mgl64.Vec3{0, 1, 0},
			expectedDist: 10,
		},
		{
			name:         "pitch from vertical uses fallback axis",
			orientation:  mgl64.Vec3{0, 1, 0},
			motion:       mgl64.Vec2{0, 100 * math.Pi / 2},
			expected:     mgl64.Vec3{0, 0, 1},
			expectedDist: 10,
		},
		{
			name:         "negative motion.x yaws counter-clockwise about Y",
			orientation:  mgl64.Vec3{0, 0, 1},
			motion:       mgl64.Vec2{-400 * math.Pi / 2, 0},
			expected:     mgl64.Vec3{1, 0, 0},
			expectedDist: 10,
		},
		{
			name:         "yaw leaves vertical orientation unchanged",
			orientation:  mgl64.Vec3{0, 1, 0},
			motion:       mgl64.Vec2{250, 0},
			expected:     mgl64.Vec3{0, 1, 0},
			expectedDist: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.Orientation = tt.orientation

			c.ApplyMouse(tt.motion, mgl64.Vec2{})

			assertVec(t, tt.expected, c.Orientation)
			assert.Equal(t, tt.expectedDist, c.Distance)
		})
	}
}

func TestOrbitCamera_PitchAxisFollowsYaw(t *testing.T) {
	start := physics.NormalizeOr(mgl64.Vec3{1, 1, 0}, physics.Up)
	motion := mgl64.Vec2{-120, 35}
	yaw := -motion.X() / DefaultYawSensitivity
	pitch := motion.Y() / DefaultPitchSensitivity

	c := NewOrbitCamera()
	c.Orientation = start
	c.ApplyMouse(motion, mgl64.Vec2{})

	yawed := physics.RotateY(start, yaw)
	postYawAxis := physics.NormalizeOr(yawed.Cross(physics.Up), physics.Right)
	expected := physics.RotateAbout(yawed, postYawAxis, pitch)
	assertVec(t, expected, c.Orientation)

	preYawAxis := physics.NormalizeOr(start.Cross(physics.Up), physics.Right)
	other := physics.RotateAbout(yawed, preYawAxis, pitch)
	assert.Greater(t, other.Sub(c.Orientation).Len(), 1e-3, "pitch axis must come from the yawed orientation")
}

func TestOrbitCamera_OrientationStaysUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewOrbitCamera()

	for i := 0; i < 5000; i++ {
		motion := mgl64.Vec2{rng.NormFloat64() * 300, rng.NormFloat64() * 300}
		c.ApplyMouse(motion, mgl64.Vec2{})
		assert.InDelta(t, 1.0, c.Orientation.Len(), 1e-9)
	}
}

func TestOrbitCamera_Zoom(t *testing.T) {
	tests := []struct {
		name     string
		max      float64
		scroll   float64
		expected float64
	}{
		{"scroll up zooms in", 0, 2, 8},
		{"scroll down zooms out", 0, -5, 15},
		{"clamped at minimum", 0, 50, DefaultMinDistance},
		{"clamped at maximum", 12, -5, 12},
		{"unbounded without maximum", 0, -1000, 1010},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.MaxDistance = tt.max

			c.ApplyMouse(mgl64.Vec2{}, mgl64.Vec2{0, tt.scroll})

			assert.Equal(t, tt.expected, c.Distance)
		})
	}
}

func TestOrbitCamera_ZoomAppliesEveryTick(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 3; i++ {
		c.ApplyMouse(mgl64.Vec2{}, mgl64.Vec2{0, 1})
	}
	assert.Equal(t, 7.0, c.Distance)
}

func TestOrbitCamera_Pose(t *testing.T) {
	c := NewOrbitCamera()
	target := mgl64.Vec3{1, 2, 3}

	pose := c.Pose(target)

	assertVec(t, mgl64.Vec3{1, 12, 3}, pose.Translation)
	assertVec(t, mgl64.Vec3{0, -1, 0}, pose.Forward())
}

func TestOrbitCamera_PoseFromSide(t *testing.T) {
	c := NewOrbitCamera()
	c.Orientation = mgl64.Vec3{0, 0, 1}
	c.Distance = 5

	pose := c.Pose(mgl64.Vec3{})

	assertVec(t, mgl64.Vec3{0, 0, 5}, pose.Translation)
	assertVec(t, mgl64.Vec3{0, 0, -1}, pose.Forward())
	assertVec(t, mgl64.Vec3{0, 1, 0}, pose.Up())
	assertVec(t, mgl64.Vec3{1, 0, 0}, pose.Right())
}
