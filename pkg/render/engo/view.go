// Package engo draws the simulation in an engo window as a top-down view of
// the ground plane and feeds keyboard and mouse input back into it.
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-magnus/pkg/camera"
	"github.com/opd-ai/go-magnus/pkg/entity"
	"github.com/opd-ai/go-magnus/pkg/physics"
)

// ViewPriority runs the view after the orbit camera has been placed
const ViewPriority = 5

// DefaultPixelsPerMeter is the scale at the default camera distance
const DefaultPixelsPerMeter = 40.0

// minSpriteSize keeps small bodies visible
const minSpriteSize = 4

// Projection maps the XZ plane onto the screen around a center point
type Projection struct {
	Center         mgl64.Vec3
	PixelsPerMeter float64
	Width, Height  float32
}

// ProjectionFor centers on the point below the camera and zooms with its
// distance: half the distance shows everything twice as large.
func ProjectionFor(t camera.Transform, orbit *camera.OrbitCamera, base float64, width, height float32) Projection {
	scale := base
	if orbit != nil && orbit.Distance > 0 {
		scale = base * camera.DefaultDistance / orbit.Distance
	}
	return Projection{
		Center:         t.Translation,
		PixelsPerMeter: scale,
		Width:          width,
		Height:         height,
	}
}

// ToScreen converts a world position to the screen point it is drawn at
func (p Projection) ToScreen(pos mgl64.Vec3) engo.Point {
	return engo.Point{
		X: float32((pos.X()-p.Center.X())*p.PixelsPerMeter) + p.Width/2,
		Y: float32((pos.Z()-p.Center.Z())*p.PixelsPerMeter) + p.Height/2,
	}
}

// Size is the on-screen diameter of a body
func (p Projection) Size(s physics.Shape) float32 {
	var extent float64
	switch s.Kind {
	case physics.Box:
		extent = 2 * math.Max(s.HalfExtents.X(), s.HalfExtents.Z())
	default:
		extent = 2 * s.Radius
	}
	return float32(math.Max(extent*p.PixelsPerMeter, minSpriteSize))
}

// BodyColor picks the fill of a body by name
func BodyColor(name string) color.Color {
	switch name {
	case entity.BallName:
		return color.RGBA{255, 255, 255, 255}
	case entity.CartName:
		return color.RGBA{255, 160, 0, 255}
	case entity.GroundName:
		return color.RGBA{40, 90, 40, 255}
	default:
		return color.RGBA{128, 128, 128, 255}
	}
}

// SpriteSink receives sprites; *common.RenderSystem satisfies it
type SpriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// BodyView keeps one circle sprite per physics body and moves the sprites
// as the bodies and the camera move.
type BodyView struct {
	sink   SpriteSink
	bodies *physics.World
	camera *camera.Rig

	PixelsPerMeter float64
	Width, Height  float32

	sprites map[physics.Handle]*sprite
}

// NewBodyView creates a view of every body in bodies seen from rig
func NewBodyView(sink SpriteSink, bodies *physics.World, rig *camera.Rig, width, height float32) *BodyView {
	return &BodyView{
		sink:           sink,
		bodies:         bodies,
		camera:         rig,
		PixelsPerMeter: DefaultPixelsPerMeter,
		Width:          width,
		Height:         height,
		sprites:        make(map[physics.Handle]*sprite),
	}
}

// Priority implements ecs.Prioritizer
func (v *BodyView) Priority() int { return ViewPriority }

// Remove implements ecs.System
func (v *BodyView) Remove(ecs.BasicEntity) {}

// Update implements ecs.System
func (v *BodyView) Update(dt float32) {
	proj := v.projection()

	live := make(map[physics.Handle]bool, v.bodies.Len())
	for _, b := range v.bodies.Bodies() {
		live[b.Handle()] = true
		s, ok := v.sprites[b.Handle()]
		if !ok {
			s = v.newSprite(b)
		}
		size := proj.Size(b.Shape())
		center := proj.ToScreen(b.Position())
		s.Width, s.Height = size, size
		s.Position = engo.Point{X: center.X - size/2, Y: center.Y - size/2}
	}

	for h, s := range v.sprites {
		if !live[h] {
			v.sink.Remove(s.BasicEntity)
			delete(v.sprites, h)
		}
	}
}

// Sprites returns the number of bodies on screen
func (v *BodyView) Sprites() int {
	return len(v.sprites)
}

// SpriteAt returns the screen rectangle of a body
func (v *BodyView) SpriteAt(h physics.Handle) (common.SpaceComponent, bool) {
	s, ok := v.sprites[h]
	if !ok {
		return common.SpaceComponent{}, false
	}
	return s.SpaceComponent, true
}

func (v *BodyView) projection() Projection {
	if v.camera == nil {
		return Projection{PixelsPerMeter: v.PixelsPerMeter, Width: v.Width, Height: v.Height}
	}
	return ProjectionFor(v.camera.Transform, &v.camera.OrbitCamera, v.PixelsPerMeter, v.Width, v.Height)
}

func (v *BodyView) newSprite(b *physics.Body) *sprite {
	var drawable common.Drawable = common.Circle{}
	if b.Shape().Kind == physics.Box {
		drawable = common.Rectangle{}
	}

	s := &sprite{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: drawable,
			Color:    BodyColor(b.Name()),
		},
	}
	// The ground sits under everything else
	if b.Type() == physics.Static {
		s.RenderComponent.SetZIndex(0)
	} else {
		s.RenderComponent.SetZIndex(1)
	}
	v.sprites[b.Handle()] = s
	v.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}
