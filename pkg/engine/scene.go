package engine

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/camera"
	"github.com/opd-ai/go-magnus/pkg/config"
	"github.com/opd-ai/go-magnus/pkg/entity"
	"github.com/opd-ai/go-magnus/pkg/event"
	"github.com/opd-ai/go-magnus/pkg/physics"
)

// Scene holds the entities spawned at setup. Entities not enabled in the
// configuration are nil.
type Scene struct {
	Ball   *entity.Ball
	Cart   *entity.Cart
	Ground *entity.Ground
	Camera *camera.Rig
}

// Body is an entity backed by a physics body
type Body interface {
	ecs.BasicFace
	entity.BodyFace
}

// setupScene spawns the ball, the cart, the ground and one orbit camera,
// then points the registry at the configured follow target.
func (s *Simulation) setupScene() {
	cfg := s.Config
	s.Scene = &Scene{}

	if cfg.Scene.Ground {
		h := s.spawn(entity.GroundDesc())
		s.Scene.Ground = entity.NewGround(h)
		s.World.AddEntity(s.Scene.Ground)
	}
	if cfg.Scene.Ball {
		h := s.spawn(entity.BallDesc())
		s.Scene.Ball = entity.NewBall(h, cfg.Physics.LiftGain, cfg.Control.Acceleration, cfg.Control.JumpImpulse.Vec())
		s.World.AddEntity(s.Scene.Ball)
	}
	if cfg.Scene.Cart {
		h := s.spawn(entity.CartDesc())
		s.Scene.Cart = entity.NewCart(h)
		s.World.AddEntity(s.Scene.Cart)
	}

	s.Scene.Camera = newCameraRig(cfg.Camera)
	s.World.AddEntity(s.Scene.Camera)

	switch cfg.Scene.Follow {
	case config.FollowCart:
		s.Registry.Set(s.Scene.Cart.Handle)
	case config.FollowBall:
		s.Registry.Set(s.Scene.Ball.Handle)
	}
}

func newCameraRig(cfg config.CameraConfig) *camera.Rig {
	rig := camera.NewRig()
	rig.Orientation = physics.NormalizeOr(cfg.Orientation.Vec(), camera.DefaultOrientation)
	rig.Distance = cfg.Distance
	rig.MinDistance = cfg.MinDistance
	rig.MaxDistance = cfg.MaxDistance
	rig.YawSensitivity = cfg.YawSensitivity
	rig.PitchSensitivity = cfg.PitchSensitivity
	return rig
}

func (s *Simulation) spawn(desc physics.BodyDesc) physics.Handle {
	h := s.Bodies.Spawn(desc)
	s.Logger.Debug(context.Background(), "body spawned", "body", desc.Name, "handle", uint64(h), "position", desc.Position)
	s.EventBus.Publish(event.NewBodyEvent(event.BodySpawned, s, h, desc.Name))
	return h
}

// Despawn removes an entity from every system and its body from the
// physics world. Cameras following it keep the stale handle and stop moving.
func (s *Simulation) Despawn(e Body) {
	s.TickLock.Lock()
	defer s.TickLock.Unlock()

	body := e.GetBodyComponent()
	s.World.RemoveEntity(*e.GetBasicEntity())
	if s.Bodies.Despawn(body.Handle) {
		s.EventBus.Publish(event.NewBodyEvent(event.BodyDespawned, s, body.Handle, body.Name))
	}
}

// BodyState is a snapshot of one body
type BodyState struct {
	Handle          physics.Handle
	Name            string
	Type            physics.BodyType
	Position        mgl64.Vec3
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// State is a snapshot of the whole simulation
type State struct {
	Tick      uint64
	Bodies    []BodyState
	Camera    camera.Transform
	Following physics.Handle
	HasTarget bool
}

// GetState returns a snapshot of the current simulation state
func (s *Simulation) GetState() *State {
	s.TickLock.Lock()
	defer s.TickLock.Unlock()

	state := &State{Tick: s.CurrentTick}
	for _, b := range s.Bodies.Bodies() {
		state.Bodies = append(state.Bodies, BodyState{
			Handle:          b.Handle(),
			Name:            b.Name(),
			Type:            b.Type(),
			Position:        b.Position(),
			LinearVelocity:  b.LinearVelocity(),
			AngularVelocity: b.AngularVelocity(),
		})
	}
	if s.Scene.Camera != nil {
		state.Camera = s.Scene.Camera.Transform
		state.Following, state.HasTarget = s.Scene.Camera.Followed()
	}
	return state
}
