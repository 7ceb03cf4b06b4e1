// Package follow holds the shared follow-target registry and the system
// that hands the target from one body to the next.
package follow

import (
	"github.com/opd-ai/go-magnus/pkg/event"
	"github.com/opd-ai/go-magnus/pkg/physics"
)

// Registry names the body every orbit camera should follow. When it is
// empty, cameras keep whatever target they already have.
//
// It is not synchronized: it is written and read from the tick loop only.
type Registry struct {
	target physics.Handle
	set    bool
	bus    *event.Bus
}

// NewRegistry creates an empty registry. bus may be nil.
func NewRegistry(bus *event.Bus) *Registry {
	return &Registry{bus: bus}
}

// Get returns the current target
func (r *Registry) Get() (physics.Handle, bool) {
	return r.target, r.set
}

// Set replaces the target
func (r *Registry) Set(h physics.Handle) {
	prev, had := r.target, r.set
	r.target, r.set = h, true
	if !had || prev != h {
		r.publish(prev, had)
	}
}

// Clear empties the registry
func (r *Registry) Clear() {
	prev, had := r.target, r.set
	r.target, r.set = 0, false
	if had {
		r.publish(prev, had)
	}
}

func (r *Registry) publish(prev physics.Handle, had bool) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(event.NewFollowEvent(r, r.target, r.set, prev, had))
}
