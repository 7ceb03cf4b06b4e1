// Package input defines the named controls the simulation reacts to and
// the sources that report them once per tick.
package input

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Control names a logical player action
type Control string

// Controls understood by the simulation
const (
	StrafeLeft  Control = "strafeLeft"
	StrafeRight Control = "strafeRight"
	Forward     Control = "forward"
	Backward    Control = "backward"
	Jump        Control = "jump"
	Reset       Control = "reset"
	CycleFollow Control = "cycleFollow"
)

// Controls returns every known control in a stable order
func Controls() []Control {
	return []Control{StrafeLeft, StrafeRight, Forward, Backward, Jump, Reset, CycleFollow}
}

// ParseControl validates a control name
func ParseControl(name string) (Control, error) {
	for _, c := range Controls() {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown control %q", name)
}

// Source reports input for the current tick
type Source interface {
	// Pressed reports whether c is held this tick
	Pressed(c Control) bool
	// JustPressed reports whether c went down since the previous tick
	JustPressed(c Control) bool
	// MouseMotion is the pointer delta accumulated since the previous tick
	MouseMotion() mgl64.Vec2
	// MouseScroll is the scroll delta accumulated since the previous tick
	MouseScroll() mgl64.Vec2
}

// Sampler is implemented by sources that latch new input at the start of a tick
type Sampler interface {
	Sample()
}

// State is a Source whose contents are set directly
type State struct {
	Held   map[Control]bool
	Fresh  map[Control]bool
	Motion mgl64.Vec2
	Scroll mgl64.Vec2
}

// NewState returns an empty input state
func NewState() *State {
	return &State{
		Held:  make(map[Control]bool),
		Fresh: make(map[Control]bool),
	}
}

// Press holds c, marking it fresh if it was not already held
func (s *State) Press(c Control) {
	if !s.Held[c] {
		s.Fresh[c] = true
	}
	s.Held[c] = true
}

// Release lets go of c
func (s *State) Release(c Control) {
	delete(s.Held, c)
	delete(s.Fresh, c)
}

// Settle ends a tick: fresh flags and mouse deltas are cleared, held controls stay
func (s *State) Settle() {
	for c := range s.Fresh {
		delete(s.Fresh, c)
	}
	s.Motion = mgl64.Vec2{}
	s.Scroll = mgl64.Vec2{}
}

func (s *State) Pressed(c Control) bool     { return s.Held[c] }
func (s *State) JustPressed(c Control) bool { return s.Fresh[c] }
func (s *State) MouseMotion() mgl64.Vec2    { return s.Motion }
func (s *State) MouseScroll() mgl64.Vec2    { return s.Scroll }

// None is a Source with no input
type None struct{}

func (None) Pressed(Control) bool     { return false }
func (None) JustPressed(Control) bool { return false }
func (None) MouseMotion() mgl64.Vec2  { return mgl64.Vec2{} }
func (None) MouseScroll() mgl64.Vec2  { return mgl64.Vec2{} }
