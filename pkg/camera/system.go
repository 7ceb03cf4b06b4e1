package camera

import (
	"context"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-magnus/pkg/follow"
	"github.com/opd-ai/go-magnus/pkg/input"
	"github.com/opd-ai/go-magnus/pkg/logging"
	"github.com/opd-ai/go-magnus/pkg/physics"
)

// Priority runs the camera after physics and every force system
const Priority = 10

// Orbiter is what System accepts
type Orbiter interface {
	ecs.BasicFace
	GetOrbitCamera() *OrbitCamera
	GetTransform() *Transform
}

// Rig is an orbit camera entity
type Rig struct {
	ecs.BasicEntity
	OrbitCamera
	Transform
}

// NewRig creates a camera entity with default orbit state
func NewRig() *Rig {
	return &Rig{
		BasicEntity: ecs.NewBasic(),
		OrbitCamera: *NewOrbitCamera(),
		Transform:   IdentityTransform(),
	}
}

type cameraEntity struct {
	*ecs.BasicEntity
	orbit     *OrbitCamera
	transform *Transform
}

// System steers orbit cameras from mouse input, keeps them on the registry
// target and places them around it.
type System struct {
	bodies   physics.BodyLookup
	registry *follow.Registry
	input    input.Source
	logger   *logging.Logger

	cameras []cameraEntity
}

// NewSystem creates a camera system. registry may be nil.
func NewSystem(bodies physics.BodyLookup, registry *follow.Registry, src input.Source, logger *logging.Logger) *System {
	if logger == nil {
		logger = logging.Discard()
	}
	return &System{bodies: bodies, registry: registry, input: src, logger: logger}
}

// Priority implements ecs.Prioritizer
func (s *System) Priority() int { return Priority }

// Add registers a camera
func (s *System) Add(basic *ecs.BasicEntity, orbit *OrbitCamera, transform *Transform) {
	s.cameras = append(s.cameras, cameraEntity{basic, orbit, transform})
}

// AddByInterface implements ecs.SystemAddByInterfacer
func (s *System) AddByInterface(i ecs.Identifier) {
	o := i.(Orbiter)
	s.Add(o.GetBasicEntity(), o.GetOrbitCamera(), o.GetTransform())
}

// Remove implements ecs.System
func (s *System) Remove(basic ecs.BasicEntity) {
	for i, c := range s.cameras {
		if c.BasicEntity.ID() == basic.ID() {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			break
		}
	}
}

// Update implements ecs.System
func (s *System) Update(dt float32) {
	motion, scroll := s.input.MouseMotion(), s.input.MouseScroll()
	for _, c := range s.cameras {
		c.orbit.ApplyMouse(motion, scroll)
	}

	if s.registry != nil {
		if h, ok := s.registry.Get(); ok {
			for _, c := range s.cameras {
				c.orbit.Follow(h)
			}
		}
	}

	for _, c := range s.cameras {
		s.place(c)
	}
}

func (s *System) place(c cameraEntity) {
	h, ok := c.orbit.Followed()
	if !ok {
		return
	}
	body, ok := s.bodies.Forces(h)
	if !ok {
		s.logger.Debug(context.Background(), "camera target not found", "handle", uint64(h))
		return
	}
	*c.transform = c.orbit.Pose(body.Position())
}
