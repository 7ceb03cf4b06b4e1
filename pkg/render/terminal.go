package render

import (
	"bufio"
	"image/color"
	"io"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/physics"
)

// TerminalRenderer provides a top-down ASCII view of the XZ plane.
// It also implements Gizmos: arrow tips are drawn as '+'.
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos mgl64.Vec3
	out       io.Writer
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions. scale is world units per character cell.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
		out:    os.Stdout,
	}
	r.Clear()
	return r
}

// SetOutput redirects Present
func (r *TerminalRenderer) SetOutput(w io.Writer) {
	r.out = w
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos mgl64.Vec3) {
	r.centerPos = pos
}

// worldToScreen projects onto the ground plane; screen rows grow with +Z
func (r *TerminalRenderer) worldToScreen(pos mgl64.Vec3) (int, int) {
	screenX := int(math.Floor((pos.X()-r.centerPos.X())/r.scale + float64(r.width)/2))
	screenY := int(math.Floor((pos.Z()-r.centerPos.Z())/r.scale + float64(r.height)/2))
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos mgl64.Vec3, symbol rune) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = symbol
	}
}

// Clear blanks the buffer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// RenderBody draws a body. Static bodies are drawn as '.', dynamic ones by
// the upper-cased first letter of their name.
func (r *TerminalRenderer) RenderBody(b *physics.Body) {
	symbol := '?'
	if name := []rune(b.Name()); len(name) > 0 {
		symbol = unicode.ToUpper(name[0])
	}
	if b.Type() == physics.Static {
		symbol = '.'
	}
	r.plot(b.Position(), symbol)
}

// RenderCamera draws the camera position as '@'
func (r *TerminalRenderer) RenderCamera(pos mgl64.Vec3) {
	r.plot(pos, '@')
}

// Arrow implements Gizmos.
func (r *TerminalRenderer) Arrow(start, end mgl64.Vec3, c color.RGBA) {
	r.plot(end, '+')
}

// String returns the framed buffer
func (r *TerminalRenderer) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", r.width) + "+\n"
	sb.WriteString(border)
	for y := range r.buffer {
		sb.WriteByte('|')
		sb.WriteString(string(r.buffer[y]))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

// Present clears the terminal and writes the frame
func (r *TerminalRenderer) Present() error {
	w := bufio.NewWriter(r.out)
	if _, err := w.WriteString("\033[H\033[2J"); err != nil {
		return err
	}
	if _, err := w.WriteString(r.String()); err != nil {
		return err
	}
	return w.Flush()
}
