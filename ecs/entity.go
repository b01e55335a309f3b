package ecs

import "fmt"

// EntityId identifies an entity within a single State. Ids start at 1 and are never reused.
type EntityId uint64

// ComponentId identifies a component within a single State. Ids start at 1 and are never reused.
type ComponentId uint64

// ComponentType is either a native type tag (e.g. "position") or a prototype entity
// whose components are inherited by the component.
type ComponentType struct {
	native    string
	prototype EntityId
}

// NativeType returns the component type for the given native type tag.
func NativeType(name string) ComponentType {
	return ComponentType{native: name}
}

// EntityType returns the component type for components instantiated from a prototype entity.
func EntityType(prototype EntityId) ComponentType {
	return ComponentType{prototype: prototype}
}

// Native returns the native type tag, if this is a native type.
func (t ComponentType) Native() (string, bool) {
	return t.native, t.prototype == 0
}

// Prototype returns the prototype entity, if this is an entity type.
func (t ComponentType) Prototype() (EntityId, bool) {
	return t.prototype, t.prototype != 0
}

func (t ComponentType) String() string {
	if t.prototype != 0 {
		return fmt.Sprintf("entity#%d", t.prototype)
	}
	return t.native
}

type entityRecord struct {
	name       string
	visible    bool
	components []ComponentId
	// components whose type is this entity
	instances  []ComponentId
	parameters map[string]Data
}

type componentRecord struct {
	owner      EntityId
	typ        ComponentType
	linkedFrom []ComponentId
	parent     ComponentId
	children   []ComponentId
}
