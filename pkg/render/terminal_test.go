package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-magnus/pkg/physics"
)

func TestNewTerminalRenderer_CreatesValidRenderer_WithCorrectDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		scale  float64
	}{
		{"small renderer", 10, 5, 1.0},
		{"medium renderer", 80, 24, 10.0},
		{"large renderer", 120, 40, 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewTerminalRenderer(tt.width, tt.height, tt.scale)
			require.NotNil(t, renderer)

			assert.Equal(t, tt.width, renderer.width)
			assert.Equal(t, tt.height, renderer.height)
			require.Len(t, renderer.buffer, tt.height)
			for _, row := range renderer.buffer {
				assert.Len(t, row, tt.width)
				assert.Equal(t, strings.Repeat(" ", tt.width), string(row))
			}
		})
	}
}

func TestTerminalRenderer_WorldToScreen(t *testing.T) {
	r := NewTerminalRenderer(20, 10, 2)

	tests := []struct {
		name  string
		pos   mgl64.Vec3
		wantX int
		wantY int
	}{
		{"origin at center", mgl64.Vec3{}, 10, 5},
		{"x to the right", mgl64.Vec3{4, 0, 0}, 12, 5},
		{"z downward", mgl64.Vec3{0, 0, 4}, 10, 7},
		{"height ignored", mgl64.Vec3{0, 100, 0}, 10, 5},
		{"negative rounds down", mgl64.Vec3{-1, 0, 0}, 9, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := r.worldToScreen(tt.pos)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestTerminalRenderer_RenderBodiesAndPresent(t *testing.T) {
	w := physics.NewWorld(mgl64.Vec3{})
	ball := w.Spawn(physics.BodyDesc{Name: "ball", Type: physics.Dynamic, Position: mgl64.Vec3{-2, 0, 0}})
	ground := w.Spawn(physics.BodyDesc{Name: "ground", Type: physics.Static, Position: mgl64.Vec3{0, -4, 0}})

	r := NewTerminalRenderer(10, 4, 1)
	b, _ := w.Body(ball)
	g, _ := w.Body(ground)
	r.RenderBody(b)
	r.RenderBody(g)
	r.RenderCamera(mgl64.Vec3{2, 10, 0})
	r.Arrow(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, Blue)
	r.RenderBody(farBody(w))

	assert.Equal(t, 'B', r.buffer[2][3])
	assert.Equal(t, '.', r.buffer[2][5])
	assert.Equal(t, '@', r.buffer[2][7])
	assert.Equal(t, '+', r.buffer[3][5])

	var out bytes.Buffer
	r.SetOutput(&out)
	require.NoError(t, r.Present())
	assert.Contains(t, out.String(), "|   B . @  |")
	assert.Contains(t, out.String(), "+----------+")

	r.Clear()
	assert.NotContains(t, r.String(), "B")
}

// farBody returns an off-screen body to check bounds handling
func farBody(w *physics.World) *physics.Body {
	h := w.Spawn(physics.BodyDesc{Name: "far", Position: mgl64.Vec3{1000, 0, 1000}})
	b, _ := w.Body(h)
	return b
}
