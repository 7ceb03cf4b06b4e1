package lift

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-magnus/pkg/entity"
	"github.com/opd-ai/go-magnus/pkg/physics"
	"github.com/opd-ai/go-magnus/pkg/render"
)

// disabledBall is a lift-tagged body that force systems must skip
type disabledBall struct {
	ecs.BasicEntity
	entity.BodyComponent
	entity.LiftComponent
	entity.DisabledComponent
}

func newLiftWorld(t *testing.T, bodies *physics.World, gizmos render.Gizmos) *ecs.World {
	t.Helper()
	sys, err := NewSystem(bodies, gizmos, 1.0/20)
	require.NoError(t, err)

	w := &ecs.World{}
	var lifted *Lifted
	var disabled *entity.DisabledFace
	w.AddSystemInterface(sys, lifted, disabled)
	return w
}

func spawnSpinning(bodies *physics.World, v, omega mgl64.Vec3) physics.Handle {
	return bodies.Spawn(physics.BodyDesc{
		Type:            physics.Dynamic,
		Material:        physics.Material{Mass: 1},
		LinearVelocity:  v,
		AngularVelocity: omega,
	})
}

func TestSystem_AppliesSpinLift(t *testing.T) {
	tests := []struct {
		name     string
		v        mgl64.Vec3
		omega    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"ball launch state", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -0.01}},
		{"backspin lifts", mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0.5, 0}},
		{"no spin", mgl64.Vec3{3, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{}},
		{"at rest", mgl64.Vec3{}, mgl64.Vec3{0, 2, 0}, mgl64.Vec3{}},
		{"spin along velocity", mgl64.Vec3{0, 0, 4}, mgl64.Vec3{0, 0, 9}, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := physics.NewWorld(mgl64.Vec3{})
			h := spawnSpinning(bodies, tt.v, tt.omega)

			w := newLiftWorld(t, bodies, nil)
			w.AddEntity(entity.NewBall(h, physics.DefaultLiftGain, 40, physics.Up))
			w.Update(1.0 / 60)

			b, _ := bodies.Body(h)
			for i := range tt.expected {
				assert.InDelta(t, tt.expected[i], b.AccumulatedForce()[i], 1e-12)
			}
		})
	}
}

func TestSystem_DrawsAccelerationArrow(t *testing.T) {
	bodies := physics.NewWorld(mgl64.Vec3{})
	h := spawnSpinning(bodies, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	f, _ := bodies.Forces(h)
	f.ApplyLinearAcceleration(mgl64.Vec3{20, 0, 0})

	rec := render.NewRecorder()
	w := newLiftWorld(t, bodies, rec)
	w.AddEntity(entity.NewBall(h, physics.DefaultLiftGain, 40, physics.Up))
	w.Update(1)

	require.Len(t, rec.Arrows(), 1)
	arrow := rec.Arrows()[0]
	assert.Equal(t, render.Magenta, arrow.Color)
	// 20 along X from the control, lift force (0, 0, -0.01) on unit mass
	assert.InDelta(t, 1, arrow.End.X(), 1e-12)
	assert.InDelta(t, 0, arrow.End.Y(), 1e-12)
	assert.InDelta(t, -0.0005, arrow.End.Z(), 1e-12)
}

func TestSystem_SkipsMissingAndDisabledBodies(t *testing.T) {
	bodies := physics.NewWorld(mgl64.Vec3{})
	gone := spawnSpinning(bodies, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	off := spawnSpinning(bodies, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})

	w := newLiftWorld(t, bodies, nil)
	w.AddEntity(entity.NewBall(gone, physics.DefaultLiftGain, 40, physics.Up))
	w.AddEntity(&disabledBall{
		BasicEntity:   ecs.NewBasic(),
		BodyComponent: entity.BodyComponent{Handle: off},
		LiftComponent: entity.LiftComponent{Gain: physics.DefaultLiftGain},
	})
	bodies.Despawn(gone)

	assert.NotPanics(t, func() { w.Update(1) })

	b, _ := bodies.Body(off)
	assert.Equal(t, mgl64.Vec3{}, b.AccumulatedForce())
}

func TestSystem_Remove(t *testing.T) {
	bodies := physics.NewWorld(mgl64.Vec3{})
	h := spawnSpinning(bodies, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})

	w := newLiftWorld(t, bodies, nil)
	ball := entity.NewBall(h, physics.DefaultLiftGain, 40, physics.Up)
	w.AddEntity(ball)
	w.RemoveEntity(ball.BasicEntity)
	w.Update(1)

	b, _ := bodies.Body(h)
	assert.Equal(t, mgl64.Vec3{}, b.AccumulatedForce())
}
