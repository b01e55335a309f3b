package systems

import (
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
)

const (
	DefaultCameraPriority = 1000
	DefaultZoom           = 32
)

// Camera maps world coordinates (y up) to screen pixels (y down), centered on X, Y.
type Camera struct {
	X, Y float64
	// pixels per world unit
	Zoom float64
}

// SelectCamera picks the highest priority camera component and places it at its owner's
// position. Without cameras it returns a camera at the origin.
func SelectCamera(r *props.Resolver, cameras []ecs.ComponentId) Camera {
	var (
		best     ecs.ComponentId
		priority float64
	)
	for _, c := range cameras {
		p := r.NumberOr(c, "priority", DefaultCameraPriority)
		if best == 0 || p > priority {
			best, priority = c, p
		}
	}

	if best == 0 {
		return Camera{Zoom: DefaultZoom}
	}

	cam := Camera{Zoom: r.NumberOr(best, "zoom", DefaultZoom)}
	if cam.Zoom <= 0 {
		cam.Zoom = DefaultZoom
	}
	if owner, err := r.State().Owner(best); err == nil {
		pos := EntityPosition(r, owner)
		cam.X, cam.Y = pos.X, pos.Y
	}
	return cam
}

// WorldToScreen converts a world point for a screen of the given size.
func (c Camera) WorldToScreen(x, y float64, width, height int) (float64, float64) {
	return (x-c.X)*c.Zoom + float64(width)/2, float64(height)/2 - (y-c.Y)*c.Zoom
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c Camera) ScreenToWorld(sx, sy float64, width, height int) (float64, float64) {
	return (sx-float64(width)/2)/c.Zoom + c.X, (float64(height)/2-sy)/c.Zoom + c.Y
}
