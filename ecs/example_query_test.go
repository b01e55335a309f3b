package ecs_test

import (
	"fmt"

	"github.com/plus3/kiln/ecs"
)

// ExampleQuery demonstrates iterating the visible components of a native type.
// Components owned by hidden entities, such as prototypes, are skipped; components
// instantiated from them onto visible entities are included.
func ExampleQuery() {
	state := ecs.NewState()

	proto := state.CreateEntity("slime", false)
	state.CreateNativeComponent(proto, "health", map[string]ecs.Data{"current": ecs.Number(5)})

	hero := state.CreateEntity("hero", true)
	state.CreateNativeComponent(hero, "health", map[string]ecs.Data{"current": ecs.Number(100)})

	slime := state.CreateEntity("slime#1", true)
	state.CreateComponentFromEntity(slime, proto, nil)

	query := ecs.NewQuery(state, "health")
	for owner, health := range query.Iter2() {
		name, _ := state.EntityName(owner)
		current, _ := state.Get(health, "current")
		fmt.Printf("%s: %s\n", name, current)
	}

	// Output:
	// hero: 100
	// slime#1: 5
}
