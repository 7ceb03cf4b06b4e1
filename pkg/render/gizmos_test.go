package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-magnus/pkg/logging"
)

func TestRecorder_RecordsAndResets(t *testing.T) {
	r := NewRecorder()
	r.Arrow(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, Blue)
	r.Arrow(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, Red)

	require.Len(t, r.Arrows(), 2)
	assert.Equal(t, Red, r.Arrows()[1].Color)

	r.Reset()
	assert.Empty(t, r.Arrows())
}

func TestMulti_FansOut(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	var g Gizmos = Multi{a, b, NullGizmos{}}

	g.Arrow(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, Yellow)

	assert.Len(t, a.Arrows(), 1)
	assert.Len(t, b.Arrows(), 1)
}

func TestLogGizmos_WritesDebugLine(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithOptions(logging.Options{Level: "debug", Format: "text", Output: &buf})

	NewLogGizmos(logger).Arrow(mgl64.Vec3{}, mgl64.Vec3{1, 2, 3}, Magenta)

	out := buf.String()
	assert.True(t, strings.Contains(out, "color=magenta"), out)
	assert.True(t, strings.Contains(out, "(1.000, 2.000, 3.000)"), out)
}

func TestColorName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{colorName(Magenta), "magenta"},
		{colorName(Blue), "blue"},
		{colorName(Red), "red"},
		{colorName(Yellow), "yellow"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.name)
	}
}
