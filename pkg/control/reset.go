package control

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-magnus/pkg/event"
	"github.com/opd-ai/go-magnus/pkg/input"
	"github.com/opd-ai/go-magnus/pkg/logging"
	"github.com/opd-ai/go-magnus/pkg/physics"
)

// ResetSystem puts every controlled body back at the origin, at rest, for
// as long as the reset control is held.
type ResetSystem struct {
	bodies physics.BodyLookup
	input  input.Source
	bus    *event.Bus
	logger *logging.Logger
	resets metric.Int64Counter

	entities entityList
}

// NewResetSystem creates a reset system. bus and logger may be nil.
func NewResetSystem(bodies physics.BodyLookup, src input.Source, bus *event.Bus, logger *logging.Logger) (*ResetSystem, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &ResetSystem{bodies: bodies, input: src, bus: bus, logger: logger}

	var err error
	s.resets, err = meter().Int64Counter(
		"control.resets",
		metric.WithDescription("Kinematic resets applied to controlled bodies"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resets counter: %w", err)
	}

	return s, nil
}

// Priority implements ecs.Prioritizer
func (s *ResetSystem) Priority() int { return ResetPriority }

// AddByInterface implements ecs.SystemAddByInterfacer
func (s *ResetSystem) AddByInterface(i ecs.Identifier) { s.entities.add(i) }

// Remove implements ecs.System
func (s *ResetSystem) Remove(basic ecs.BasicEntity) { s.entities.remove(basic) }

// Update implements ecs.System
func (s *ResetSystem) Update(dt float32) {
	if !s.input.Pressed(input.Reset) {
		return
	}

	ctx := context.Background()
	for _, e := range s.entities {
		body, ok := s.bodies.Forces(e.Handle)
		if !ok {
			continue
		}

		body.Overwrite(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{})
		s.resets.Add(ctx, 1)
		s.logger.Debug(ctx, "body reset", "body", e.Name)
		if s.bus != nil {
			s.bus.Publish(event.NewBodyEvent(event.BodyReset, s, e.Handle, e.Name))
		}
	}
}
