package display

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
	"github.com/plus3/kiln/systems"
	"go.uber.org/zap"
)

// DisplaySystem draws every visible spriteDisplay component through the active camera.
// Sprites are drawn from the lowest z to the highest.
type DisplaySystem struct {
	Sprites ecs.Query `ecs:"spriteDisplay"`
	Cameras ecs.Query `ecs:"camera"`

	// Screen receives the next frame. Nothing is drawn while it is nil.
	Screen *ebiten.Image

	props    *props.Resolver
	textures *TextureCache
	input    *Input
	log      *zap.Logger

	noCamera bool
}

type sprite struct {
	texture *ebiten.Image
	rect    systems.Rect
	pos     systems.Vec
}

// NewDisplaySystem creates a display system. When input is not nil it is kept in sync with
// the camera so cursor positions can be mapped back to the world.
func NewDisplaySystem(r *props.Resolver, textures *TextureCache, input *Input, log *zap.Logger) *DisplaySystem {
	return &DisplaySystem{props: r, textures: textures, input: input, log: log}
}

// Preload decodes the textures of every visible sprite. The system must be registered first.
func (s *DisplaySystem) Preload() error {
	var names []string
	for c := range s.Sprites.Iter() {
		if name, ok := s.props.String(c, "texture"); ok {
			names = append(names, name)
		}
	}
	return s.textures.Preload(names)
}

func (s *DisplaySystem) Execute(frame *ecs.UpdateFrame) {
	if s.Screen == nil {
		return
	}
	width, height := s.Screen.Bounds().Dx(), s.Screen.Bounds().Dy()

	cameras := slices.Collect(s.Cameras.Iter())
	if len(cameras) == 0 && !s.noCamera {
		s.log.Warn("no active camera on the scene")
	}
	s.noCamera = len(cameras) == 0

	cam := systems.SelectCamera(s.props, cameras)
	if s.input != nil {
		s.input.SetView(cam, width, height)
	}

	var sprites []sprite
	for owner, c := range s.Sprites.Iter2() {
		name, ok := s.props.String(c, "texture")
		if !ok {
			continue
		}
		tex, ok := s.textures.Get(name)
		if !ok {
			continue
		}

		bounds := tex.Bounds()
		sprites = append(sprites, sprite{
			texture: tex,
			rect:    systems.SpriteRect(s.props, c, bounds.Dx(), bounds.Dy()),
			pos:     systems.EntityPosition(s.props, owner),
		})
	}

	slices.SortStableFunc(sprites, func(a, b sprite) int {
		return cmp.Compare(a.pos.Z, b.pos.Z)
	})

	for _, sp := range sprites {
		s.draw(cam, width, height, sp)
	}
}

func (s *DisplaySystem) draw(cam systems.Camera, width, height int, sp sprite) {
	x0, y0 := cam.WorldToScreen(sp.pos.X+sp.rect.Left, sp.pos.Y+sp.rect.Top, width, height)
	x1, y1 := cam.WorldToScreen(sp.pos.X+sp.rect.Right, sp.pos.Y+sp.rect.Bottom, width, height)

	bounds := sp.texture.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale((x1-x0)/float64(bounds.Dx()), (y1-y0)/float64(bounds.Dy()))
	op.GeoM.Translate(x0, y0)
	op.Filter = ebiten.FilterLinear
	s.Screen.DrawImage(sp.texture, op)
}
