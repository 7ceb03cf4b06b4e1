package input

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Script is a recorded sequence of input frames, loaded from YAML:
//
//	loop: false
//	frames:
//	  - ticks: 30
//	    hold: [forward]
//	    tap: [jump]
//	    motion: [4, 0]
//	    scroll: 0.5
type Script struct {
	Loop   bool    `yaml:"loop"`
	Frames []Frame `yaml:"frames"`
}

// Frame holds a set of inputs for a number of ticks
type Frame struct {
	Ticks int `yaml:"ticks"`
	// Hold is held for every tick of the frame
	Hold []Control `yaml:"hold"`
	// Tap is held for the first tick of the frame only
	Tap []Control `yaml:"tap"`
	// Motion is the mouse delta reported on every tick of the frame
	Motion [2]float64 `yaml:"motion"`
	// Scroll is the vertical scroll delta reported on every tick of the frame
	Scroll float64 `yaml:"scroll"`
}

// LoadScript reads a YAML input script
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML input script
func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse input script: %w", err)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

// Validate checks frame lengths and control names
func (s *Script) Validate() error {
	for i, f := range s.Frames {
		if f.Ticks <= 0 {
			return fmt.Errorf("frame %d: ticks must be positive, got %d", i, f.Ticks)
		}
		for _, c := range append(append([]Control(nil), f.Hold...), f.Tap...) {
			if _, err := ParseControl(string(c)); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
	}
	return nil
}

// Len is the total number of ticks covered by one pass of the script
func (s *Script) Len() int {
	n := 0
	for _, f := range s.Frames {
		n += f.Ticks
	}
	return n
}

// Playback replays a Script one tick per Sample call
type Playback struct {
	*State
	script *Script
	frame  int
	offset int
	done   bool
}

// NewPlayback starts a playback at the first frame
func NewPlayback(script *Script) *Playback {
	return &Playback{
		State:  NewState(),
		script: script,
		frame:  0,
		offset: -1,
		done:   script.Len() <= 0,
	}
}

// Sample advances to the next tick of the script
func (p *Playback) Sample() {
	prev := p.State.Held
	p.State = NewState()

	if p.done || !p.advance() {
		p.done = true
		return
	}

	f := p.script.Frames[p.frame]
	for _, c := range f.Hold {
		p.State.Held[c] = true
	}
	if p.offset == 0 {
		for _, c := range f.Tap {
			p.State.Held[c] = true
		}
	}
	for c := range p.State.Held {
		if !prev[c] {
			p.State.Fresh[c] = true
		}
	}
	p.State.Motion = mgl64.Vec2{f.Motion[0], f.Motion[1]}
	p.State.Scroll = mgl64.Vec2{0, f.Scroll}
}

func (p *Playback) advance() bool {
	p.offset++
	for p.offset >= p.script.Frames[p.frame].Ticks {
		p.offset = 0
		p.frame++
		if p.frame >= len(p.script.Frames) {
			if !p.script.Loop {
				return false
			}
			p.frame = 0
		}
	}
	return true
}

// Done reports whether a non-looping script has been exhausted
func (p *Playback) Done() bool {
	return p.done
}
