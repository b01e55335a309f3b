package ecs

import "slices"

// SetComponentParent makes parent the structural parent of component, replacing any
// previous parent.
func (s *State) SetComponentParent(component, parent ComponentId) error {
	rec, ok := s.components.Get(component)
	if !ok {
		return componentNotFound(component)
	}
	parentRec, ok := s.components.Get(parent)
	if !ok {
		return componentNotFound(parent)
	}

	for p := parent; p != 0; {
		if p == component {
			return ErrParentCycle
		}
		prec, ok := s.components.Get(p)
		if !ok {
			break
		}
		p = prec.parent
	}

	if rec.parent != 0 {
		if err := s.ClearComponentParent(component); err != nil {
			return err
		}
	}

	rec.parent = parent
	parentRec.children = append(parentRec.children, component)
	return nil
}

// ClearComponentParent detaches component from its parent. It is a no-op for root components.
func (s *State) ClearComponentParent(component ComponentId) error {
	rec, ok := s.components.Get(component)
	if !ok {
		return componentNotFound(component)
	}
	if rec.parent == 0 {
		return nil
	}

	if parentRec, ok := s.components.Get(rec.parent); ok {
		parentRec.children = remove(parentRec.children, component)
	}
	rec.parent = 0
	return nil
}

// ComponentParent returns the component's parent, if it has one.
func (s *State) ComponentParent(component ComponentId) (ComponentId, bool, error) {
	rec, ok := s.components.Get(component)
	if !ok {
		return 0, false, componentNotFound(component)
	}
	return rec.parent, rec.parent != 0, nil
}

// ComponentChildren returns the component's children in insertion order.
func (s *State) ComponentChildren(component ComponentId) ([]ComponentId, error) {
	rec, ok := s.components.Get(component)
	if !ok {
		return nil, componentNotFound(component)
	}
	return slices.Clone(rec.children), nil
}
