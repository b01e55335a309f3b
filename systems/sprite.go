package systems

import (
	"math"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
)

// Rect is a rectangle in world units relative to an entity position, y up.
type Rect struct {
	Left, Top, Right, Bottom float64
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// Contains reports whether the point lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= math.Min(r.Left, r.Right) && x <= math.Max(r.Left, r.Right) &&
		y >= math.Min(r.Bottom, r.Top) && y <= math.Max(r.Bottom, r.Top)
}

// Edges holds the rectangle edges a component sets explicitly.
type Edges struct {
	Left, Top, Right, Bottom             float64
	HasLeft, HasTop, HasRight, HasBottom bool
}

// ReadEdges reads leftX, topY, rightX and bottomY from a component. Non numeric or missing
// values are left unset.
func ReadEdges(r *props.Resolver, c ecs.ComponentId) Edges {
	var e Edges
	e.Left, e.HasLeft = r.Number(c, "leftX")
	e.Top, e.HasTop = r.Number(c, "topY")
	e.Right, e.HasRight = r.Number(c, "rightX")
	e.Bottom, e.HasBottom = r.Number(c, "bottomY")
	return e
}

// Complete fills in the missing edges. ratio is the texture's height divided by its width;
// derived edges keep that aspect ratio, and a missing pair of opposite edges is centered on
// the entity. Without any edge the result is a unit square.
func (e Edges) Complete(ratio float64) Rect {
	l, t, r, b := e.Left, e.Top, e.Right, e.Bottom
	abs := math.Abs

	switch {
	case e.HasLeft && e.HasTop && e.HasRight && e.HasBottom:
		return Rect{l, t, r, b}
	case e.HasLeft && e.HasRight && e.HasBottom:
		return Rect{l, b + ratio*abs(r-l), r, b}
	case e.HasLeft && e.HasTop && e.HasRight:
		return Rect{l, t, r, t - ratio*abs(r-l)}
	case e.HasTop && e.HasRight && e.HasBottom:
		return Rect{r - (t-b)/ratio, t, r, b}
	case e.HasLeft && e.HasTop && e.HasBottom:
		return Rect{l, t, l + (t-b)/ratio, b}
	case e.HasRight && e.HasBottom:
		return Rect{-r, -b, r, b}
	case e.HasTop && e.HasBottom:
		return Rect{-0.5 * abs(t-b) / ratio, t, 0.5 * abs(t-b) / ratio, b}
	case e.HasTop && e.HasRight:
		return Rect{-r, t, r, -t}
	case e.HasLeft && e.HasBottom:
		return Rect{l, -b, -l, b}
	case e.HasLeft && e.HasRight:
		return Rect{l, 0.5 * abs(r-l) * ratio, r, -0.5 * abs(r-l) * ratio}
	case e.HasLeft && e.HasTop:
		return Rect{l, t, -l, -t}
	case e.HasLeft:
		return Rect{l, abs(l) * ratio, -l, -abs(l) * ratio}
	case e.HasRight:
		return Rect{-r, abs(r) * ratio, r, -abs(r) * ratio}
	case e.HasTop:
		return Rect{-abs(t) / ratio, t, abs(t) / ratio, -t}
	case e.HasBottom:
		return Rect{-abs(b) / ratio, -b, abs(b) / ratio, b}
	default:
		return Rect{-0.5, 0.5, 0.5, -0.5}
	}
}

// SpriteRect returns the rectangle covered by a spriteDisplay component whose texture has
// the given size in pixels.
func SpriteRect(r *props.Resolver, c ecs.ComponentId, width, height int) Rect {
	ratio := 1.0
	if width > 0 && height > 0 {
		ratio = float64(height) / float64(width)
	}
	return ReadEdges(r, c).Complete(ratio)
}
