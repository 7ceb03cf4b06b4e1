package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// World is a minimal rigid-body integrator. It integrates accumulated
// forces, accelerations and impulses with semi-implicit Euler and does not
// resolve collisions or constraints.
type World struct {
	Gravity mgl64.Vec3
	// MaxSpeed caps linear speed after integration, 0 disables the cap
	MaxSpeed float64

	bodies map[Handle]*Body
	order  []Handle
	nextID Handle
}

// NewWorld creates an empty world with the given gravity
func NewWorld(gravity mgl64.Vec3) *World {
	return &World{
		Gravity: gravity,
		bodies:  make(map[Handle]*Body),
		nextID:  1,
	}
}

// Spawn adds a body and returns its handle
func (w *World) Spawn(desc BodyDesc) Handle {
	h := w.nextID
	w.nextID++

	if desc.Type == Dynamic && desc.Material.Mass <= 0 {
		desc.Material.Mass = 1
	}

	w.bodies[h] = newBody(h, desc)
	w.order = append(w.order, h)
	return h
}

// Despawn removes a body. Removing an unknown handle is a no-op.
func (w *World) Despawn(h Handle) bool {
	if _, ok := w.bodies[h]; !ok {
		return false
	}
	delete(w.bodies, h)
	for i, id := range w.order {
		if id == h {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Body returns the body for h
func (w *World) Body(h Handle) (*Body, bool) {
	b, ok := w.bodies[h]
	return b, ok
}

// Forces implements BodyLookup
func (w *World) Forces(h Handle) (Forces, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return nil, false
	}
	return b, true
}

// Bodies returns live bodies in spawn order
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.order))
	for _, h := range w.order {
		out = append(out, w.bodies[h])
	}
	return out
}

// Handles returns live handles sorted ascending
func (w *World) Handles() []Handle {
	out := make([]Handle, 0, len(w.bodies))
	for h := range w.bodies {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of live bodies
func (w *World) Len() int {
	return len(w.bodies)
}

// Step advances every dynamic body by dt seconds and clears all accumulators
func (w *World) Step(dt float64) {
	for _, h := range w.order {
		b := w.bodies[h]
		if b.bodyType == Dynamic && dt > 0 {
			integrate(b, dt, w.Gravity, w.MaxSpeed)
		}
		b.clearAccumulators()
	}
}

func integrate(b *Body, dt float64, gravity mgl64.Vec3, maxSpeed float64) {
	invMass := 1 / b.material.Mass

	// Impulses change velocity instantly, the rest is scaled by dt
	accel := b.force.Mul(invMass).Add(b.acceleration).Add(gravity)
	b.linearVelocity = b.linearVelocity.
		Add(accel.Mul(dt)).
		Add(b.impulse.Mul(invMass))

	if maxSpeed > 0 {
		if speed := b.linearVelocity.Len(); speed > maxSpeed && !math.IsInf(speed, 0) {
			b.linearVelocity = b.linearVelocity.Mul(maxSpeed / speed)
		}
	}

	b.position = b.position.Add(b.linearVelocity.Mul(dt))
}
