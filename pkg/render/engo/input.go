package engo

import (
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/input"
)

// Bindings maps each control to the keys that trigger it
type Bindings map[input.Control][]engo.Key

// DefaultBindings returns the keyboard layout of the windowed client
func DefaultBindings() Bindings {
	return Bindings{
		input.StrafeLeft:  {engo.KeyA},
		input.StrafeRight: {engo.KeyD},
		input.Forward:     {engo.KeyW},
		input.Backward:    {engo.KeyS},
		input.Jump:        {engo.KeySpace},
		input.Reset:       {engo.KeyC},
		input.CycleFollow: {engo.KeyF},
	}
}

// SetupInputBindings registers one engo button per control, named after the control
func SetupInputBindings(b Bindings) {
	for _, c := range input.Controls() {
		if keys := b[c]; len(keys) > 0 {
			engo.Input.RegisterButton(string(c), keys...)
		}
	}
}

// ButtonReader is the part of the engo input manager the adapter reads
type ButtonReader interface {
	Down(name string) bool
	JustPressed(name string) bool
	// Mouse returns the cursor position and the vertical scroll of this frame
	Mouse() (x, y, scrollY float32)
}

type engoReader struct{}

func (engoReader) Down(name string) bool        { return engo.Input.Button(name).Down() }
func (engoReader) JustPressed(name string) bool { return engo.Input.Button(name).JustPressed() }
func (engoReader) Mouse() (float32, float32, float32) {
	m := engo.Input.Mouse
	return m.X, m.Y, m.ScrollY
}

// Input latches engo keyboard and mouse state once per tick. Mouse motion
// is the cursor delta since the previous sample.
type Input struct {
	*input.State
	reader ButtonReader

	lastX, lastY float32
	primed       bool
}

// NewInput creates an adapter; a nil reader reads engo.Input
func NewInput(reader ButtonReader) *Input {
	if reader == nil {
		reader = engoReader{}
	}
	return &Input{State: input.NewState(), reader: reader}
}

// Sample implements input.Sampler
func (in *Input) Sample() {
	s := input.NewState()
	for _, c := range input.Controls() {
		name := string(c)
		s.Held[c] = in.reader.Down(name)
		s.Fresh[c] = in.reader.JustPressed(name)
	}

	x, y, scroll := in.reader.Mouse()
	if in.primed {
		s.Motion = mgl64.Vec2{float64(x - in.lastX), float64(y - in.lastY)}
	}
	s.Scroll = mgl64.Vec2{0, float64(scroll)}
	in.lastX, in.lastY, in.primed = x, y, true

	in.State = s
}
