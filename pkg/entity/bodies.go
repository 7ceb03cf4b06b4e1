// pkg/entity/bodies.go
package entity

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/physics"
)

// Names used for scene bodies
const (
	BallName   = "ball"
	CartName   = "car"
	GroundName = "ground"
)

// Ball is the spinning, player-controlled sphere
type Ball struct {
	ecs.BasicEntity
	BodyComponent
	LiftComponent
	ControlComponent
	FollowableComponent
}

// NewBall wraps an already spawned body
func NewBall(h physics.Handle, liftGain, acceleration float64, jump mgl64.Vec3) *Ball {
	return &Ball{
		BasicEntity:      ecs.NewBasic(),
		BodyComponent:    BodyComponent{Handle: h, Name: BallName},
		LiftComponent:    LiftComponent{Gain: liftGain},
		ControlComponent: ControlComponent{Acceleration: acceleration, JumpImpulse: jump},
	}
}

// Cart is the single-body vehicle the camera follows by default
type Cart struct {
	ecs.BasicEntity
	BodyComponent
	FollowableComponent
}

// NewCart wraps an already spawned body
func NewCart(h physics.Handle) *Cart {
	return &Cart{
		BasicEntity:   ecs.NewBasic(),
		BodyComponent: BodyComponent{Handle: h, Name: CartName},
	}
}

// Ground is the static floor
type Ground struct {
	ecs.BasicEntity
	BodyComponent
}

// NewGround wraps an already spawned body
func NewGround(h physics.Handle) *Ground {
	return &Ground{
		BasicEntity:   ecs.NewBasic(),
		BodyComponent: BodyComponent{Handle: h, Name: GroundName},
	}
}

// BallDesc is the body description of the ball
func BallDesc() physics.BodyDesc {
	return physics.BodyDesc{
		Name:            BallName,
		Type:            physics.Dynamic,
		Shape:           physics.Shape{Kind: physics.Sphere, Radius: 0.15},
		Material:        physics.Material{Mass: 0.2, Restitution: 0.5},
		Position:        mgl64.Vec3{-5, 2, 0},
		LinearVelocity:  mgl64.Vec3{1, 0, 0},
		AngularVelocity: mgl64.Vec3{0, 1, 0},
	}
}

// CartDesc is the body description of the cart base
func CartDesc() physics.BodyDesc {
	return physics.BodyDesc{
		Name:     CartName,
		Type:     physics.Dynamic,
		Shape:    physics.Shape{Kind: physics.Cone, Radius: 1, Height: 4},
		Material: physics.Material{Mass: 1},
		Position: mgl64.Vec3{10, 1.5, 0},
	}
}

// GroundDesc is the body description of the floor
func GroundDesc() physics.BodyDesc {
	return physics.BodyDesc{
		Name:     GroundName,
		Type:     physics.Static,
		Shape:    physics.Shape{Kind: physics.Cylinder, Radius: 100, Height: 0.1},
		Material: physics.Material{Restitution: 1},
		Position: mgl64.Vec3{0, -4, 0},
	}
}
