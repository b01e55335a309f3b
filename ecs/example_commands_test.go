package ecs_test

import (
	"fmt"

	"github.com/plus3/kiln/ecs"
)

type CleanupSystem struct {
	Healths ecs.Query `ecs:"health"`
}

func (s *CleanupSystem) Execute(frame *ecs.UpdateFrame) {
	deadCount := 0
	for owner, health := range s.Healths.Iter2() {
		current, _ := frame.State.Get(health, "current")
		if v, _ := current.AsNumber(); v <= 0 {
			frame.Commands.DestroyEntity(owner)
			deadCount++
		}
	}
	if deadCount > 0 {
		fmt.Printf("Queued %d dead entities for deletion\n", deadCount)
	}
}

// ExampleCommands demonstrates using command buffers to defer state mutations.
// Commands are applied by the Scheduler once every system of the frame has run, so
// systems never observe a partially updated state.
func ExampleCommands() {
	state := ecs.NewState()
	for _, hp := range []float64{0, 50, 100} {
		e := state.CreateEntity("", true)
		state.CreateNativeComponent(e, "health", map[string]ecs.Data{"current": ecs.Number(hp)})
	}

	scheduler := ecs.NewScheduler(state)
	scheduler.Register(&CleanupSystem{})

	scheduler.Once(1.0)

	fmt.Printf("Remaining entities: %d\n", len(state.Entities()))

	// Output:
	// Queued 1 dead entities for deletion
	// Remaining entities: 2
}

type ShootingSystem struct {
	Guns   ecs.Query `ecs:"gun"`
	Bullet ecs.EntityId
}

func (s *ShootingSystem) Execute(frame *ecs.UpdateFrame) {
	for owner, gun := range s.Guns.Iter2() {
		frame.Commands.Instantiate(owner, s.Bullet, gun, map[string]ecs.Data{
			"fired": ecs.Number(frame.DeltaTime),
		})
	}
}

// ExampleCommands_instantiate demonstrates instantiating a prototype from a system.
// The new component becomes a child of the gun, so destroying the gun also removes
// its bullets.
func ExampleCommands_instantiate() {
	state := ecs.NewState()

	bullet := state.CreateEntity("bullet", false)
	state.CreateNativeComponent(bullet, "sprite", map[string]ecs.Data{"texture": ecs.String("bullet.png")})

	ship := state.CreateEntity("ship", true)
	gun, _ := state.CreateNativeComponent(ship, "gun", nil)

	scheduler := ecs.NewScheduler(state)
	scheduler.Register(&ShootingSystem{Bullet: bullet})

	scheduler.Once(1.0)
	scheduler.Once(1.0)

	children, _ := state.ComponentChildren(gun)
	fmt.Printf("Bullets fired: %d\n", len(children))
	fmt.Printf("Visible sprites: %d\n", len(state.VisibleNativeComponents("sprite")))

	state.DestroyComponent(gun)
	fmt.Printf("Visible sprites after destroying the gun: %d\n", len(state.VisibleNativeComponents("sprite")))

	// Output:
	// Bullets fired: 2
	// Visible sprites: 2
	// Visible sprites after destroying the gun: 0
}
