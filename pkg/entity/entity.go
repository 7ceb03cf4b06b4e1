// pkg/entity/entity.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/physics"
)

// BodyComponent links an ecs entity to a physics body
type BodyComponent struct {
	Handle physics.Handle
	Name   string
}

// GetBodyComponent returns the component itself
func (c *BodyComponent) GetBodyComponent() *BodyComponent { return c }

// BodyFace is implemented by every entity backed by a physics body
type BodyFace interface {
	GetBodyComponent() *BodyComponent
}

// LiftComponent marks a body as subject to spin lift
type LiftComponent struct {
	Gain float64
}

func (c *LiftComponent) GetLiftComponent() *LiftComponent { return c }

// LiftFace selects lift-tagged entities
type LiftFace interface {
	GetLiftComponent() *LiftComponent
}

// ControlComponent marks a body as driven by player input
type ControlComponent struct {
	Acceleration float64
	JumpImpulse  mgl64.Vec3
}

func (c *ControlComponent) GetControlComponent() *ControlComponent { return c }

// ControlFace selects player-controlled entities
type ControlFace interface {
	GetControlComponent() *ControlComponent
}

// FollowableComponent marks a body the camera may be moved to
type FollowableComponent struct{}

func (c *FollowableComponent) GetFollowableComponent() *FollowableComponent { return c }

// FollowableFace selects camera-followable entities
type FollowableFace interface {
	GetFollowableComponent() *FollowableComponent
}

// DisabledComponent excludes an entity from every force system
type DisabledComponent struct{}

func (c *DisabledComponent) GetDisabledComponent() *DisabledComponent { return c }

// DisabledFace selects disabled entities
type DisabledFace interface {
	GetDisabledComponent() *DisabledComponent
}
