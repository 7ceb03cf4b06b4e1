package follow

import (
	"context"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-magnus/pkg/entity"
	"github.com/opd-ai/go-magnus/pkg/input"
	"github.com/opd-ai/go-magnus/pkg/logging"
)

// CyclePriority runs the cycle system ahead of the force systems
const CyclePriority = 60

// Followable is what CycleSystem accepts
type Followable interface {
	ecs.BasicFace
	entity.BodyFace
	entity.FollowableFace
}

type cycleEntity struct {
	*ecs.BasicEntity
	*entity.BodyComponent
}

// CycleSystem moves the registry to the next followable body each time
// the cycleFollow control is pressed.
type CycleSystem struct {
	registry *Registry
	input    input.Source
	logger   *logging.Logger

	entities []cycleEntity
}

// NewCycleSystem creates a cycle system
func NewCycleSystem(registry *Registry, src input.Source, logger *logging.Logger) *CycleSystem {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CycleSystem{registry: registry, input: src, logger: logger}
}

// Priority implements ecs.Prioritizer
func (s *CycleSystem) Priority() int { return CyclePriority }

// Add registers a followable body
func (s *CycleSystem) Add(basic *ecs.BasicEntity, body *entity.BodyComponent) {
	s.entities = append(s.entities, cycleEntity{basic, body})
}

// AddByInterface implements ecs.SystemAddByInterfacer
func (s *CycleSystem) AddByInterface(i ecs.Identifier) {
	o := i.(Followable)
	s.Add(o.GetBasicEntity(), o.GetBodyComponent())
}

// Remove implements ecs.System
func (s *CycleSystem) Remove(basic ecs.BasicEntity) {
	for i, e := range s.entities {
		if e.BasicEntity.ID() == basic.ID() {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
}

// Update implements ecs.System
func (s *CycleSystem) Update(dt float32) {
	if len(s.entities) == 0 || !s.input.JustPressed(input.CycleFollow) {
		return
	}

	next := 0
	if current, ok := s.registry.Get(); ok {
		for i, e := range s.entities {
			if e.Handle == current {
				next = (i + 1) % len(s.entities)
				break
			}
		}
	}

	target := s.entities[next]
	s.registry.Set(target.Handle)
	s.logger.Debug(context.Background(), "follow target cycled", "body", target.Name, "handle", uint64(target.Handle))
}
