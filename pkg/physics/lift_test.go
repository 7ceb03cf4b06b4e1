package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSpinLift(t *testing.T) {
	tests := []struct {
		name     string
		v        mgl64.Vec3
		omega    mgl64.Vec3
		k        float64
		expected mgl64.Vec3
	}{
		// (0,1,0) x (1,0,0) = (0,0,-1)
		{"topspin_sideways", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, 0.01, mgl64.Vec3{0, 0, -0.01}},
		{"scaled_gain", mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 0, 3}, 0.5, mgl64.Vec3{0, 3, 0}},
		{"zero_velocity", mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, 0.01, mgl64.Vec3{}},
		{"zero_spin", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{}, 0.01, mgl64.Vec3{}},
		{"parallel", mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 5, 0}, 0.01, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.expected, SpinLift(tt.v, tt.omega, tt.k))
		})
	}
}
