package ecs_test

import (
	"github.com/plus3/kiln/ecs"
)

// MovementSystem adds each movement component's x to the position components of its owner.
type MovementSystem struct {
	Positions    ecs.Query `ecs:"position"`
	Movements    ecs.Query `ecs:"movement"`
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for owner, movement := range s.Movements.Iter2() {
		dx, err := frame.State.Get(movement, "x")
		if err != nil {
			continue
		}
		v, _ := dx.AsNumber()
		for _, position := range s.Positions.OwnedBy(owner) {
			x, _ := frame.State.Get(position, "x")
			cur, _ := x.AsNumber()
			frame.Commands.Set(position, "x", ecs.Number(cur+v*frame.DeltaTime))
		}
	}
}

// CountingSystem records how many visible positions it saw.
type CountingSystem struct {
	Positions    ecs.Query `ecs:"position"`
	ExecuteCount int
	Seen         int
}

func (s *CountingSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.Seen = s.Positions.Len()
}

func newMovingEntity(state *ecs.State, x, dx float64) (ecs.EntityId, ecs.ComponentId) {
	e := state.CreateEntity("", true)
	position, _ := state.CreateNativeComponent(e, "position", map[string]ecs.Data{"x": ecs.Number(x)})
	state.CreateNativeComponent(e, "movement", map[string]ecs.Data{"x": ecs.Number(dx)})
	return e, position
}

func numberField(state *ecs.State, c ecs.ComponentId, field string) float64 {
	d, err := state.Get(c, field)
	if err != nil {
		return 0
	}
	v, _ := d.AsNumber()
	return v
}
