package ecs

import (
	"maps"
	"slices"

	"github.com/kamstrup/intmap"
)

// State holds every entity and component of a running game.
//
// Component data is kept in two arenas: native field maps, and links that redirect reads
// and writes to another component. A component lives in exactly one of them.
// State is not safe for concurrent use; see Shared.
type State struct {
	entities   *intmap.Map[EntityId, *entityRecord]
	components *intmap.Map[ComponentId, *componentRecord]
	fields     *intmap.Map[ComponentId, map[string]Data]
	links      *intmap.Map[ComponentId, ComponentId]

	// visible components keyed by native type tag
	byNative map[string]*intmap.Set[ComponentId]

	lastEntity    EntityId
	lastComponent ComponentId
}

// NewState creates an empty State.
func NewState() *State {
	return &State{
		entities:   intmap.New[EntityId, *entityRecord](64),
		components: intmap.New[ComponentId, *componentRecord](256),
		fields:     intmap.New[ComponentId, map[string]Data](256),
		links:      intmap.New[ComponentId, ComponentId](256),
		byNative:   make(map[string]*intmap.Set[ComponentId]),
	}
}

// CreateEntity creates an entity without components. An empty name leaves it unnamed.
func (s *State) CreateEntity(name string, visible bool) EntityId {
	s.lastEntity++
	s.entities.Put(s.lastEntity, &entityRecord{
		name:       name,
		visible:    visible,
		parameters: make(map[string]Data),
	})
	return s.lastEntity
}

// DestroyEntity destroys an entity. Components instantiated from it are destroyed first,
// followed by the entity's own components.
func (s *State) DestroyEntity(id EntityId) error {
	rec, ok := s.entities.Get(id)
	if !ok {
		return entityNotFound(id)
	}

	for _, c := range slices.Clone(rec.instances) {
		_ = s.DestroyComponent(c)
	}
	for _, c := range slices.Clone(rec.components) {
		_ = s.DestroyComponent(c)
	}

	s.entities.Del(id)
	return nil
}

// HasEntity reports whether the entity exists.
func (s *State) HasEntity(id EntityId) bool {
	return s.entities.Has(id)
}

// Entities returns every entity id in ascending order.
func (s *State) Entities() []EntityId {
	ids := make([]EntityId, 0, s.entities.Len())
	for id := range s.entities.Keys() {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EntityName returns the entity's name, empty when unnamed.
func (s *State) EntityName(id EntityId) (string, error) {
	rec, ok := s.entities.Get(id)
	if !ok {
		return "", entityNotFound(id)
	}
	return rec.name, nil
}

// EntitiesByName returns every entity whose name matches exactly, in ascending order.
func (s *State) EntitiesByName(name string) []EntityId {
	if name == "" {
		return nil
	}

	var ids []EntityId
	s.entities.ForEach(func(id EntityId, rec *entityRecord) bool {
		if rec.name == name {
			ids = append(ids, id)
		}
		return true
	})
	slices.Sort(ids)
	return ids
}

// EntityComponents returns the components owned by the entity, in creation order.
func (s *State) EntityComponents(id EntityId) ([]ComponentId, error) {
	rec, ok := s.entities.Get(id)
	if !ok {
		return nil, entityNotFound(id)
	}
	return slices.Clone(rec.components), nil
}

// ComponentsOfType returns the components whose type is the given prototype entity.
func (s *State) ComponentsOfType(id EntityId) ([]ComponentId, error) {
	rec, ok := s.entities.Get(id)
	if !ok {
		return nil, entityNotFound(id)
	}
	return slices.Clone(rec.instances), nil
}

// DefaultParameters returns a copy of the entity's default parameters.
func (s *State) DefaultParameters(id EntityId) (map[string]Data, error) {
	rec, ok := s.entities.Get(id)
	if !ok {
		return nil, entityNotFound(id)
	}
	return maps.Clone(rec.parameters), nil
}

// SetDefaultParameter stores a default parameter on the entity.
func (s *State) SetDefaultParameter(id EntityId, name string, value Data) error {
	rec, ok := s.entities.Get(id)
	if !ok {
		return entityNotFound(id)
	}
	rec.parameters[name] = value
	return nil
}

// CreateNativeComponent attaches a component of a native type to owner. The data map is copied.
func (s *State) CreateNativeComponent(owner EntityId, typename string, data map[string]Data) (ComponentId, error) {
	ownerRec, ok := s.entities.Get(owner)
	if !ok {
		return 0, entityNotFound(owner)
	}

	id := s.newComponent(owner, ownerRec, NativeType(typename))
	fields := maps.Clone(data)
	if fields == nil {
		fields = make(map[string]Data)
	}
	s.fields.Put(id, fields)
	return id, nil
}

func (s *State) newComponent(owner EntityId, ownerRec *entityRecord, typ ComponentType) ComponentId {
	s.lastComponent++
	id := s.lastComponent

	s.components.Put(id, &componentRecord{owner: owner, typ: typ})
	ownerRec.components = append(ownerRec.components, id)

	if name, native := typ.Native(); native && ownerRec.visible {
		s.indexAdd(name, id)
	}
	if proto, ok := typ.Prototype(); ok {
		if protoRec, ok := s.entities.Get(proto); ok {
			protoRec.instances = append(protoRec.instances, id)
		}
	}
	return id
}

// DestroyComponent destroys a component along with its children and every component
// linking to it. Failures while cascading are ignored.
func (s *State) DestroyComponent(id ComponentId) error {
	rec, ok := s.components.Get(id)
	if !ok {
		return componentNotFound(id)
	}

	if rec.parent != 0 {
		if parent, ok := s.components.Get(rec.parent); ok {
			parent.children = remove(parent.children, id)
		}
		rec.parent = 0
	}

	for _, child := range slices.Clone(rec.children) {
		_ = s.DestroyComponent(child)
	}
	for _, inheritor := range slices.Clone(rec.linkedFrom) {
		_ = s.DestroyComponent(inheritor)
	}

	if ownerRec, ok := s.entities.Get(rec.owner); ok {
		ownerRec.components = remove(ownerRec.components, id)
	}
	if name, native := rec.typ.Native(); native {
		s.indexDel(name, id)
	}
	if proto, ok := rec.typ.Prototype(); ok {
		if protoRec, ok := s.entities.Get(proto); ok {
			protoRec.instances = remove(protoRec.instances, id)
		}
	}
	if target, ok := s.links.Get(id); ok {
		if targetRec, ok := s.components.Get(target); ok {
			targetRec.linkedFrom = remove(targetRec.linkedFrom, id)
		}
	}

	s.links.Del(id)
	s.fields.Del(id)
	s.components.Del(id)
	return nil
}

// HasComponent reports whether the component exists.
func (s *State) HasComponent(id ComponentId) bool {
	return s.components.Has(id)
}

// Owner returns the entity owning the component.
func (s *State) Owner(id ComponentId) (EntityId, error) {
	rec, ok := s.components.Get(id)
	if !ok {
		return 0, componentNotFound(id)
	}
	return rec.owner, nil
}

// Type returns the component's type.
func (s *State) Type(id ComponentId) (ComponentType, error) {
	rec, ok := s.components.Get(id)
	if !ok {
		return ComponentType{}, componentNotFound(id)
	}
	return rec.typ, nil
}

// LinkTarget returns the component this one links to, if it is a link.
func (s *State) LinkTarget(id ComponentId) (ComponentId, bool, error) {
	if !s.components.Has(id) {
		return 0, false, componentNotFound(id)
	}
	target, ok := s.links.Get(id)
	return target, ok, nil
}

// LinkedFrom returns the components linking directly to this one.
func (s *State) LinkedFrom(id ComponentId) ([]ComponentId, error) {
	rec, ok := s.components.Get(id)
	if !ok {
		return nil, componentNotFound(id)
	}
	return slices.Clone(rec.linkedFrom), nil
}

// resolve follows links until it reaches a component holding native data.
func (s *State) resolve(id ComponentId) (ComponentId, map[string]Data, error) {
	for {
		if fields, ok := s.fields.Get(id); ok {
			return id, fields, nil
		}
		target, ok := s.links.Get(id)
		if !ok {
			return 0, nil, componentNotFound(id)
		}
		id = target
	}
}

// Set writes a field, following links. Writing through a link modifies the shared
// prototype data seen by every inheritor.
func (s *State) Set(id ComponentId, field string, value Data) error {
	_, fields, err := s.resolve(id)
	if err != nil {
		return err
	}
	fields[field] = value
	return nil
}

// Get reads a field, following links.
func (s *State) Get(id ComponentId, field string) (Data, error) {
	terminal, fields, err := s.resolve(id)
	if err != nil {
		return Data{}, err
	}
	value, ok := fields[field]
	if !ok {
		return Data{}, &FieldDoesNotExistError{Component: terminal, Field: field}
	}
	return value, nil
}

// Fields returns a copy of the native data the component resolves to.
func (s *State) Fields(id ComponentId) (map[string]Data, error) {
	_, fields, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	return maps.Clone(fields), nil
}

// IsEntityVisible reports the entity's visibility flag.
func (s *State) IsEntityVisible(id EntityId) (bool, error) {
	rec, ok := s.entities.Get(id)
	if !ok {
		return false, entityNotFound(id)
	}
	return rec.visible, nil
}

// IsComponentVisible reports whether the component's owner is visible.
func (s *State) IsComponentVisible(id ComponentId) (bool, error) {
	rec, ok := s.components.Get(id)
	if !ok {
		return false, componentNotFound(id)
	}
	return s.IsEntityVisible(rec.owner)
}

// SetEntityVisible changes the entity's visibility and updates the native type index.
func (s *State) SetEntityVisible(id EntityId, visible bool) error {
	rec, ok := s.entities.Get(id)
	if !ok {
		return entityNotFound(id)
	}
	if rec.visible == visible {
		return nil
	}
	rec.visible = visible

	for _, c := range rec.components {
		crec, ok := s.components.Get(c)
		if !ok {
			continue
		}
		name, native := crec.typ.Native()
		if !native {
			continue
		}
		if visible {
			s.indexAdd(name, c)
		} else {
			s.indexDel(name, c)
		}
	}
	return nil
}

func remove[T comparable](items []T, item T) []T {
	if i := slices.Index(items, item); i >= 0 {
		return slices.Delete(items, i, i+1)
	}
	return items
}
