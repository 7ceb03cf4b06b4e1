package engine

import (
	"context"

	"github.com/EngoEngine/ecs"
	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-magnus/pkg/input"
	"github.com/opd-ai/go-magnus/pkg/physics"
)

// Priorities of the systems owned by this package. The remaining systems
// sit in between: follow cycling 60, control 50, reset 40, lift 20, camera 10.
const (
	ClockPriority   = 100
	PhysicsPriority = 30
)

// ClockSystem opens every tick: it latches input and counts the tick
type ClockSystem struct {
	sim *Simulation
}

// Priority implements ecs.Prioritizer
func (c *ClockSystem) Priority() int { return ClockPriority }

// Remove implements ecs.System
func (c *ClockSystem) Remove(ecs.BasicEntity) {}

// Update implements ecs.System
func (c *ClockSystem) Update(dt float32) {
	if sampler, ok := c.sim.Input.(input.Sampler); ok {
		sampler.Sample()
	}
	c.sim.CurrentTick++
	c.sim.ticks.Add(context.Background(), 1, metric.WithAttributes(runAttr(c.sim.RunID)))
}

// PhysicsSystem advances the physics world by the frame time
type PhysicsSystem struct {
	bodies *physics.World
}

// Priority implements ecs.Prioritizer
func (p *PhysicsSystem) Priority() int { return PhysicsPriority }

// Remove implements ecs.System
func (p *PhysicsSystem) Remove(ecs.BasicEntity) {}

// Update implements ecs.System
func (p *PhysicsSystem) Update(dt float32) {
	p.bodies.Step(float64(dt))
}
