package physics

import "github.com/go-gl/mathgl/mgl64"

// Handle identifies a body inside a World. Zero is never issued.
type Handle uint64

// BodyType tells the integrator whether a body moves
type BodyType int

const (
	// Dynamic bodies respond to forces, accelerations and impulses
	Dynamic BodyType = iota
	// Static bodies never move
	Static
)

// String returns the body type name
func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// ShapeKind enumerates the supported collider geometries
type ShapeKind int

const (
	Sphere ShapeKind = iota
	Box
	Cylinder
	Cone
)

// Shape describes body geometry. The reference integrator does not
// collide bodies, the shape is carried for rendering and for engines
// that do.
type Shape struct {
	Kind ShapeKind
	// Radius for spheres, cylinders and cones
	Radius float64
	// Height for cylinders and cones
	Height float64
	// HalfExtents for boxes
	HalfExtents mgl64.Vec3
}

// Material holds the mass properties of a body
type Material struct {
	Mass        float64
	Restitution float64
	Friction    float64
}

// BodyDesc is everything needed to spawn a body
type BodyDesc struct {
	Name            string
	Type            BodyType
	Shape           Shape
	Material        Material
	Position        mgl64.Vec3
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Forces is the per-body view the control layer reads and writes.
// Applied forces, accelerations and impulses accumulate until the next Step.
type Forces interface {
	Position() mgl64.Vec3
	LinearVelocity() mgl64.Vec3
	AngularVelocity() mgl64.Vec3

	ApplyForce(f mgl64.Vec3)
	ApplyLinearAcceleration(a mgl64.Vec3)
	ApplyLinearImpulse(j mgl64.Vec3)

	// AccumulatedLinearAcceleration is the acceleration queued for the next
	// step: applied accelerations plus queued forces over mass
	AccumulatedLinearAcceleration() mgl64.Vec3

	// Overwrite replaces position and both velocities in a single write.
	// It bypasses force accumulation.
	Overwrite(position, linearVelocity, angularVelocity mgl64.Vec3)
}

// BodyLookup resolves handles to bodies. ok is false when the handle does
// not refer to a live body.
type BodyLookup interface {
	Forces(h Handle) (f Forces, ok bool)
}

// Body is the state of a single rigid body in the reference World
type Body struct {
	handle   Handle
	name     string
	bodyType BodyType
	shape    Shape
	material Material

	position        mgl64.Vec3
	linearVelocity  mgl64.Vec3
	angularVelocity mgl64.Vec3

	force        mgl64.Vec3
	acceleration mgl64.Vec3
	impulse      mgl64.Vec3
}

func newBody(h Handle, desc BodyDesc) *Body {
	return &Body{
		handle:          h,
		name:            desc.Name,
		bodyType:        desc.Type,
		shape:           desc.Shape,
		material:        desc.Material,
		position:        desc.Position,
		linearVelocity:  desc.LinearVelocity,
		angularVelocity: desc.AngularVelocity,
	}
}

// Handle returns the body's identity
func (b *Body) Handle() Handle { return b.handle }

// Name returns the name given at spawn time
func (b *Body) Name() string { return b.name }

// Type returns whether the body is dynamic or static
func (b *Body) Type() BodyType { return b.bodyType }

// Shape returns the body geometry
func (b *Body) Shape() Shape { return b.shape }

// Material returns the mass properties
func (b *Body) Material() Material { return b.material }

func (b *Body) Position() mgl64.Vec3        { return b.position }
func (b *Body) LinearVelocity() mgl64.Vec3  { return b.linearVelocity }
func (b *Body) AngularVelocity() mgl64.Vec3 { return b.angularVelocity }

// ApplyForce adds f to the force accumulator
func (b *Body) ApplyForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// ApplyLinearAcceleration adds a mass-independent acceleration
func (b *Body) ApplyLinearAcceleration(a mgl64.Vec3) {
	b.acceleration = b.acceleration.Add(a)
}

// ApplyLinearImpulse adds an instantaneous change of momentum
func (b *Body) ApplyLinearImpulse(j mgl64.Vec3) {
	b.impulse = b.impulse.Add(j)
}

// AccumulatedForce is the force queued for the next step
func (b *Body) AccumulatedForce() mgl64.Vec3 { return b.force }

// AccumulatedLinearAcceleration is the acceleration queued for the next
// step, queued forces included
func (b *Body) AccumulatedLinearAcceleration() mgl64.Vec3 {
	if b.material.Mass <= 0 {
		return b.acceleration
	}
	return b.acceleration.Add(b.force.Mul(1 / b.material.Mass))
}

// AccumulatedImpulse is the impulse queued for the next step
func (b *Body) AccumulatedImpulse() mgl64.Vec3 { return b.impulse }

// Overwrite sets the kinematic state directly
func (b *Body) Overwrite(position, linearVelocity, angularVelocity mgl64.Vec3) {
	b.position = position
	b.linearVelocity = linearVelocity
	b.angularVelocity = angularVelocity
}

func (b *Body) clearAccumulators() {
	b.force = mgl64.Vec3{}
	b.acceleration = mgl64.Vec3{}
	b.impulse = mgl64.Vec3{}
}
