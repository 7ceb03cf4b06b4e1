package follow

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-magnus/pkg/entity"
	"github.com/opd-ai/go-magnus/pkg/input"
	"github.com/opd-ai/go-magnus/pkg/physics"
)

func newCycleWorld(t *testing.T, src input.Source, registry *Registry) *ecs.World {
	t.Helper()
	w := &ecs.World{}
	var followable *Followable
	var disabled *entity.DisabledFace
	w.AddSystemInterface(NewCycleSystem(registry, src, nil), followable, disabled)
	return w
}

func TestCycleSystem_AdvancesOnPress(t *testing.T) {
	src := input.NewState()
	registry := NewRegistry(nil)
	w := newCycleWorld(t, src, registry)

	ball := entity.NewBall(1, 0.01, 40, physics.Up)
	cart := entity.NewCart(2)
	ground := entity.NewGround(3)
	w.AddEntity(ball)
	w.AddEntity(cart)
	w.AddEntity(ground)

	registry.Set(2)

	// No press: unchanged
	w.Update(1)
	h, _ := registry.Get()
	assert.Equal(t, physics.Handle(2), h)

	src.Press(input.CycleFollow)
	w.Update(1)
	h, _ = registry.Get()
	assert.Equal(t, physics.Handle(1), h, "wraps from cart back to ball, ground is not followable")

	// Held, not fresh: unchanged
	src.Settle()
	w.Update(1)
	h, _ = registry.Get()
	assert.Equal(t, physics.Handle(1), h)

	src.Release(input.CycleFollow)
	src.Press(input.CycleFollow)
	w.Update(1)
	h, _ = registry.Get()
	assert.Equal(t, physics.Handle(2), h)
}

func TestCycleSystem_EmptyRegistryPicksFirst(t *testing.T) {
	src := input.NewState()
	registry := NewRegistry(nil)
	w := newCycleWorld(t, src, registry)
	w.AddEntity(entity.NewCart(9))

	src.Press(input.CycleFollow)
	w.Update(1)

	h, ok := registry.Get()
	require.True(t, ok)
	assert.Equal(t, physics.Handle(9), h)
}

func TestCycleSystem_RemovedEntityNotSelected(t *testing.T) {
	src := input.NewState()
	registry := NewRegistry(nil)
	w := newCycleWorld(t, src, registry)

	cart := entity.NewCart(4)
	w.AddEntity(cart)
	w.RemoveEntity(cart.BasicEntity)

	src.Press(input.CycleFollow)
	w.Update(1)

	_, ok := registry.Get()
	assert.False(t, ok)
}
