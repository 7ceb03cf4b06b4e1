// Package lift applies the spin-induced lift force to spinning bodies.
package lift

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"
	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-magnus/pkg/entity"
	"github.com/opd-ai/go-magnus/pkg/physics"
	"github.com/opd-ai/go-magnus/pkg/render"
)

// Priority runs lift after the physics step so it reads integrated state
const Priority = 20

// Lifted is what System accepts
type Lifted interface {
	ecs.BasicFace
	entity.BodyFace
	entity.LiftFace
}

type liftEntity struct {
	*ecs.BasicEntity
	*entity.BodyComponent
	*entity.LiftComponent
}

// System applies f = k * (angular velocity x linear velocity) to every lift-tagged body
type System struct {
	bodies     physics.BodyLookup
	gizmos     render.Gizmos
	arrowScale float64
	magnitude  metric.Float64Histogram

	entities []liftEntity
}

// NewSystem creates a lift system. gizmos may be nil.
func NewSystem(bodies physics.BodyLookup, gizmos render.Gizmos, arrowScale float64) (*System, error) {
	if gizmos == nil {
		gizmos = render.NullGizmos{}
	}
	s := &System{
		bodies:     bodies,
		gizmos:     gizmos,
		arrowScale: arrowScale,
	}

	var err error
	s.magnitude, err = meter().Float64Histogram(
		"lift.force.magnitude",
		metric.WithDescription("Magnitude of the spin lift force applied per body and tick"),
		metric.WithUnit("N"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lift magnitude histogram: %w", err)
	}

	return s, nil
}

// Priority implements ecs.Prioritizer
func (s *System) Priority() int { return Priority }

// Add registers a lift-tagged body
func (s *System) Add(basic *ecs.BasicEntity, body *entity.BodyComponent, lift *entity.LiftComponent) {
	s.entities = append(s.entities, liftEntity{basic, body, lift})
}

// AddByInterface implements ecs.SystemAddByInterfacer
func (s *System) AddByInterface(i ecs.Identifier) {
	o := i.(Lifted)
	s.Add(o.GetBasicEntity(), o.GetBodyComponent(), o.GetLiftComponent())
}

// Remove implements ecs.System
func (s *System) Remove(basic ecs.BasicEntity) {
	for i, e := range s.entities {
		if e.BasicEntity.ID() == basic.ID() {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
}

// Update implements ecs.System
func (s *System) Update(dt float32) {
	ctx := context.Background()
	for _, e := range s.entities {
		body, ok := s.bodies.Forces(e.Handle)
		if !ok {
			continue
		}

		f := physics.SpinLift(body.LinearVelocity(), body.AngularVelocity(), e.Gain)
		body.ApplyForce(f)
		s.magnitude.Record(ctx, f.Len())

		pos := body.Position()
		s.gizmos.Arrow(pos, pos.Add(body.AccumulatedLinearAcceleration().Mul(s.arrowScale)), render.Magenta)
	}
}
