package main

import (
	"fmt"
	"math/rand"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/systems"
)

var nativeTypes = []string{"health", "sprite", "collider", "tag", "inventory", "ai"}

// SpawnPrototypes creates hidden prototype entities. Every third prototype nests an earlier
// one so instances get links several tiers deep.
func SpawnPrototypes(state *ecs.State, count int) []ecs.EntityId {
	prototypes := make([]ecs.EntityId, 0, count)
	for i := 0; i < count; i++ {
		proto := state.CreateEntity(fmt.Sprintf("proto/%d", i), false)

		for _, typename := range pick(nativeTypes, rand.Intn(3)+1) {
			_, _ = state.CreateNativeComponent(proto, typename, map[string]ecs.Data{
				"value": ecs.Number(rand.Float64()),
			})
		}
		if i%3 == 2 {
			_, _ = state.CreateComponentFromEntity(proto, prototypes[rand.Intn(len(prototypes))], nil)
		}

		prototypes = append(prototypes, proto)
	}
	return prototypes
}

// SpawnRandomEntity creates a visible moving entity instantiating n random prototypes.
func SpawnRandomEntity(state *ecs.State, prototypes []ecs.EntityId, n int) ecs.EntityId {
	e := state.CreateEntity("", true)

	_, _ = state.CreateNativeComponent(e, systems.PositionType, map[string]ecs.Data{
		"x": ecs.Number(rand.Float64() * 100),
		"y": ecs.Number(rand.Float64() * 100),
	})
	_, _ = state.CreateNativeComponent(e, systems.MovementType, map[string]ecs.Data{
		"x": ecs.Number(0),
		"y": ecs.Number(0),
	})
	_, _ = state.CreateNativeComponent(e, systems.RequestedMovementType, map[string]ecs.Data{
		"x": ecs.Number(rand.Float64()*2 - 1),
		"y": ecs.Number(0),
	})
	_, _ = state.CreateNativeComponent(e, systems.PhysicsType, map[string]ecs.Data{
		"activated": ecs.Boolean(true),
	})

	if len(prototypes) > 0 {
		for i := 0; i < n; i++ {
			_, _ = state.CreateComponentFromEntity(e, prototypes[rand.Intn(len(prototypes))], nil)
		}
	}
	return e
}

// ChurnSystem destroys random prototype instances on visible entities and queues
// replacements every frame.
type ChurnSystem struct {
	PerFrame   int
	Prototypes []ecs.EntityId
}

func (c *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	if len(c.Prototypes) == 0 {
		return
	}

	for i := 0; i < c.PerFrame; i++ {
		proto := c.Prototypes[rand.Intn(len(c.Prototypes))]
		instances, err := frame.State.ComponentsOfType(proto)
		if err != nil || len(instances) == 0 {
			continue
		}

		victim := instances[rand.Intn(len(instances))]
		owner, err := frame.State.Owner(victim)
		if err != nil {
			continue
		}
		if visible, _ := frame.State.IsEntityVisible(owner); !visible {
			continue
		}

		frame.Commands.DestroyComponent(victim)
		frame.Commands.Instantiate(owner, c.Prototypes[rand.Intn(len(c.Prototypes))], 0, nil)
	}
}

func pick(items []string, n int) []string {
	shuffled := append([]string(nil), items...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:min(n, len(shuffled))]
}
