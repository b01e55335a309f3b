package ecs

import "maps"

// CreateComponentFromEntity instantiates prototype onto owner. The new component holds
// data and receives, as children, links mirroring the prototype's component tree. Every
// link reads and writes the prototype's data.
func (s *State) CreateComponentFromEntity(owner, prototype EntityId, data map[string]Data) (ComponentId, error) {
	ownerRec, ok := s.entities.Get(owner)
	if !ok {
		return 0, entityNotFound(owner)
	}
	protoRec, ok := s.entities.Get(prototype)
	if !ok {
		return 0, entityNotFound(prototype)
	}

	roots := s.rootComponents(prototype, protoRec)

	id := s.newComponent(owner, ownerRec, EntityType(prototype))
	fields := maps.Clone(data)
	if fields == nil {
		fields = make(map[string]Data)
	}
	s.fields.Put(id, fields)

	for _, src := range roots {
		if err := s.mirror(owner, ownerRec, id, src); err != nil {
			_ = s.DestroyComponent(id)
			return 0, err
		}
	}
	return id, nil
}

// rootComponents lists the entity's components that have no parent on the same entity.
func (s *State) rootComponents(id EntityId, rec *entityRecord) []ComponentId {
	roots := make([]ComponentId, 0, len(rec.components))
	for _, c := range rec.components {
		crec, ok := s.components.Get(c)
		if !ok {
			continue
		}
		if crec.parent != 0 {
			if prec, ok := s.components.Get(crec.parent); ok && prec.owner == id {
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}

// mirror creates a link to src under parent, then recurses into src's children.
func (s *State) mirror(owner EntityId, ownerRec *entityRecord, parent, src ComponentId) error {
	srcRec, ok := s.components.Get(src)
	if !ok {
		return componentNotFound(src)
	}
	parentRec, ok := s.components.Get(parent)
	if !ok {
		return componentNotFound(parent)
	}

	children := make([]ComponentId, 0, len(srcRec.children))
	for _, child := range srcRec.children {
		if crec, ok := s.components.Get(child); ok && crec.owner == srcRec.owner {
			children = append(children, child)
		}
	}

	link := s.newComponent(owner, ownerRec, srcRec.typ)
	s.links.Put(link, src)
	srcRec.linkedFrom = append(srcRec.linkedFrom, link)

	linkRec, _ := s.components.Get(link)
	linkRec.parent = parent
	parentRec.children = append(parentRec.children, link)

	for _, child := range children {
		if err := s.mirror(owner, ownerRec, link, child); err != nil {
			return err
		}
	}
	return nil
}
