package ecs

// System represents a behavior run once per frame against the State.
// Systems may declare Query fields tagged with a native type, e.g.
//
//	Sprites ecs.Query `ecs:"spriteDisplay"`
//
// which the Scheduler initializes on registration. Other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
