// Package control turns keyboard input into accelerations, jump impulses
// and resets for player-controlled bodies.
package control

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/entity"
	"github.com/opd-ai/go-magnus/pkg/input"
	"github.com/opd-ai/go-magnus/pkg/physics"
	"github.com/opd-ai/go-magnus/pkg/render"
)

// Priorities: control runs first among force systems, reset right after it
const (
	Priority      = 50
	ResetPriority = 40
)

// Controlled is what System and ResetSystem accept
type Controlled interface {
	ecs.BasicFace
	entity.BodyFace
	entity.ControlFace
}

type controlEntity struct {
	*ecs.BasicEntity
	*entity.BodyComponent
	*entity.ControlComponent
}

type entityList []controlEntity

func (l *entityList) add(i ecs.Identifier) {
	o := i.(Controlled)
	*l = append(*l, controlEntity{o.GetBasicEntity(), o.GetBodyComponent(), o.GetControlComponent()})
}

func (l *entityList) remove(basic ecs.BasicEntity) {
	for i, e := range *l {
		if e.BasicEntity.ID() == basic.ID() {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return
		}
	}
}

// Frame returns the horizontal heading of a body moving with velocity v and
// the strafe direction to its right. A body without horizontal motion faces +X.
func Frame(v mgl64.Vec3) (normal, tangent mgl64.Vec3) {
	normal = physics.NormalizeOr(physics.Horizontal(v), physics.Right)
	tangent = physics.NormalizeOr(normal.Cross(physics.Up), mgl64.Vec3{0, 0, 1})
	return normal, tangent
}

// System applies strafe and forward/backward accelerations while keys are
// held and a jump impulse on each fresh jump press.
type System struct {
	bodies     physics.BodyLookup
	input      input.Source
	gizmos     render.Gizmos
	arrowScale float64

	entities entityList
}

// NewSystem creates a control system. gizmos may be nil.
func NewSystem(bodies physics.BodyLookup, src input.Source, gizmos render.Gizmos, arrowScale float64) *System {
	if gizmos == nil {
		gizmos = render.NullGizmos{}
	}
	return &System{bodies: bodies, input: src, gizmos: gizmos, arrowScale: arrowScale}
}

// Priority implements ecs.Prioritizer
func (s *System) Priority() int { return Priority }

// AddByInterface implements ecs.SystemAddByInterfacer
func (s *System) AddByInterface(i ecs.Identifier) { s.entities.add(i) }

// Remove implements ecs.System
func (s *System) Remove(basic ecs.BasicEntity) { s.entities.remove(basic) }

// Update implements ecs.System
func (s *System) Update(dt float32) {
	for _, e := range s.entities {
		body, ok := s.bodies.Forces(e.Handle)
		if !ok {
			continue
		}

		v := body.LinearVelocity()
		normal, tangent := Frame(v)
		a := e.Acceleration

		if s.input.Pressed(input.StrafeLeft) {
			body.ApplyLinearAcceleration(tangent.Mul(-a))
		}
		if s.input.Pressed(input.StrafeRight) {
			body.ApplyLinearAcceleration(tangent.Mul(a))
		}
		if s.input.Pressed(input.Forward) {
			body.ApplyLinearAcceleration(normal.Mul(a))
		}
		if s.input.Pressed(input.Backward) {
			body.ApplyLinearAcceleration(normal.Mul(-a))
		}
		if s.input.JustPressed(input.Jump) {
			body.ApplyLinearImpulse(e.JumpImpulse)
		}

		pos := body.Position()
		s.gizmos.Arrow(pos, pos.Add(v.Mul(s.arrowScale)), render.Blue)
		s.gizmos.Arrow(pos, pos.Add(body.AccumulatedLinearAcceleration().Mul(s.arrowScale)), render.Red)
		s.gizmos.Arrow(pos, pos.Add(body.AngularVelocity().Mul(s.arrowScale)), render.Yellow)
	}
}
