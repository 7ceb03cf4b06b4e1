// pkg/render/gizmos.go
package render

import (
	"context"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/logging"
)

// Debug arrow colors
var (
	Magenta = color.RGBA{R: 255, B: 255, A: 255}
	Blue    = color.RGBA{B: 255, A: 255}
	Red     = color.RGBA{R: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, A: 255}
)

// Gizmos draws immediate-mode debug shapes. Shapes live for one frame.
type Gizmos interface {
	Arrow(start, end mgl64.Vec3, c color.RGBA)
}

// Arrow is a recorded debug arrow
type Arrow struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
	Color color.RGBA
}

// NullGizmos discards every shape
type NullGizmos struct{}

// Arrow implements Gizmos.
func (NullGizmos) Arrow(mgl64.Vec3, mgl64.Vec3, color.RGBA) {}

// Recorder keeps the arrows drawn since the last Reset
type Recorder struct {
	arrows []Arrow
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Arrow implements Gizmos.
func (r *Recorder) Arrow(start, end mgl64.Vec3, c color.RGBA) {
	r.arrows = append(r.arrows, Arrow{Start: start, End: end, Color: c})
}

// Arrows returns the recorded arrows
func (r *Recorder) Arrows() []Arrow {
	return r.arrows
}

// Reset drops recorded arrows, call once per frame
func (r *Recorder) Reset() {
	r.arrows = r.arrows[:0]
}

// LogGizmos writes every shape to the debug log.
type LogGizmos struct {
	logger *logging.Logger
}

// NewLogGizmos creates a new LogGizmos with structured logging.
func NewLogGizmos(logger *logging.Logger) *LogGizmos {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &LogGizmos{logger: logger}
}

// Arrow implements Gizmos.
func (g *LogGizmos) Arrow(start, end mgl64.Vec3, c color.RGBA) {
	g.logger.Debug(context.Background(), "arrow",
		"start", start,
		"end", end,
		"color", colorName(c),
	)
}

// Multi fans shapes out to several Gizmos
type Multi []Gizmos

// Arrow implements Gizmos.
func (m Multi) Arrow(start, end mgl64.Vec3, c color.RGBA) {
	for _, g := range m {
		g.Arrow(start, end, c)
	}
}

func colorName(c color.RGBA) string {
	switch c {
	case Magenta:
		return "magenta"
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	default:
		return "custom"
	}
}
