// Package systems implements the per-frame game systems that operate on an ecs.State.
package systems

import (
	"math"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
)

// Native component types read by the systems.
const (
	PositionType          = "position"
	MovementType          = "movement"
	RequestedMovementType = "requestedMovement"
	PhysicsType           = "physics"
	InputHandlerType      = "inputHandler"
	ClickBoxType          = "clickBox"
	HoverHandlerType      = "hoverHandler"
	ExternContentType     = "externContent"
	CameraType            = "camera"
	SpriteDisplayType     = "spriteDisplay"
)

// Vec is a position or velocity in world units.
type Vec struct {
	X, Y, Z float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f, v.Z * f} }

func (v Vec) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Components returns the entity's components of a native type, in creation order.
// Invisible or unknown entities have none.
func Components(state *ecs.State, entity ecs.EntityId, typename string) []ecs.ComponentId {
	if visible, err := state.IsEntityVisible(entity); err != nil || !visible {
		return nil
	}
	all, err := state.EntityComponents(entity)
	if err != nil {
		return nil
	}

	var out []ecs.ComponentId
	for _, c := range all {
		typ, err := state.Type(c)
		if err != nil {
			continue
		}
		if name, native := typ.Native(); native && name == typename {
			out = append(out, c)
		}
	}
	return out
}

// ReadVec reads the x, y and z fields of a component. Missing fields read as zero.
func ReadVec(r *props.Resolver, c ecs.ComponentId) Vec {
	return Vec{
		X: r.NumberOr(c, "x", 0),
		Y: r.NumberOr(c, "y", 0),
		Z: r.NumberOr(c, "z", 0),
	}
}

// SumVec adds up the vectors of several components.
func SumVec(r *props.Resolver, components []ecs.ComponentId) Vec {
	var sum Vec
	for _, c := range components {
		sum = sum.Add(ReadVec(r, c))
	}
	return sum
}

// EntityPosition is the sum of the entity's position components.
func EntityPosition(r *props.Resolver, entity ecs.EntityId) Vec {
	return SumVec(r, Components(r.State(), entity, PositionType))
}

// addVec adds delta to the component's own x, y and z fields.
func addVec(r *props.Resolver, c ecs.ComponentId, delta Vec) error {
	cur := ReadVec(r, c).Add(delta)
	state := r.State()
	if err := state.Set(c, "x", ecs.Number(cur.X)); err != nil {
		return err
	}
	if err := state.Set(c, "y", ecs.Number(cur.Y)); err != nil {
		return err
	}
	if delta.Z != 0 {
		return state.Set(c, "z", ecs.Number(cur.Z))
	}
	return nil
}
