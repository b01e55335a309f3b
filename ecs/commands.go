package ecs

import "errors"

// Commands provides a buffer for deferred State operations that are executed at the end of a frame.
// This prevents structural changes to the State while systems iterate over it.
type Commands struct {
	sets         []setCommand
	instantiates []instantiateCommand
	destroys     []ComponentId
	deletes      []EntityId
	defers       []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type setCommand struct {
	component ComponentId
	field     string
	value     Data
}

type instantiateCommand struct {
	owner     EntityId
	prototype EntityId
	parent    ComponentId
	data      map[string]Data
}

// Set queues a field write.
func (c *Commands) Set(component ComponentId, field string, value Data) {
	c.sets = append(c.sets, setCommand{component: component, field: field, value: value})
}

// Instantiate queues CreateComponentFromEntity. A non-zero parent becomes the new component's parent.
func (c *Commands) Instantiate(owner, prototype EntityId, parent ComponentId, data map[string]Data) {
	c.instantiates = append(c.instantiates, instantiateCommand{
		owner:     owner,
		prototype: prototype,
		parent:    parent,
		data:      data,
	})
}

// DestroyComponent queues a component destruction.
func (c *Commands) DestroyComponent(component ComponentId) {
	c.destroys = append(c.destroys, component)
}

// DestroyEntity queues an entity destruction.
func (c *Commands) DestroyEntity(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.sets) + len(c.instantiates) + len(c.destroys) + len(c.deletes) + len(c.defers)
}

// Flush applies all commands to the provided state, reseting the buffer state.
// Commands run in order: sets, instantiations, component and then entity destruction, defers.
// Components or entities already gone by the time their destruction runs are skipped.
func (c *Commands) Flush(state *State) error {
	var errs []error

	for _, cmd := range c.sets {
		if err := state.Set(cmd.component, cmd.field, cmd.value); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.instantiates {
		id, err := state.CreateComponentFromEntity(cmd.owner, cmd.prototype, cmd.data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if cmd.parent != 0 {
			if err := state.SetComponentParent(id, cmd.parent); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, id := range c.destroys {
		if state.HasComponent(id) {
			_ = state.DestroyComponent(id)
		}
	}

	for _, id := range c.deletes {
		if state.HasEntity(id) {
			_ = state.DestroyEntity(id)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.sets = c.sets[:0]
	c.instantiates = c.instantiates[:0]
	c.destroys = c.destroys[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
