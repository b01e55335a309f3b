package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// VisibleNativeComponents returns the components of the given native type whose owner
// is visible, in ascending order. Unknown types yield an empty result.
func (s *State) VisibleNativeComponents(typename string) []ComponentId {
	set, ok := s.byNative[typename]
	if !ok {
		return nil
	}

	ids := make([]ComponentId, 0, set.Len())
	for id := range set.All() {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// NativeTypes returns every native type tag that currently has visible components.
func (s *State) NativeTypes() []string {
	names := make([]string, 0, len(s.byNative))
	for name := range s.byNative {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s *State) indexAdd(typename string, id ComponentId) {
	set, ok := s.byNative[typename]
	if !ok {
		set = intmap.NewSet[ComponentId](16)
		s.byNative[typename] = set
	}
	set.Add(id)
}

func (s *State) indexDel(typename string, id ComponentId) {
	set, ok := s.byNative[typename]
	if !ok {
		return
	}
	set.Del(id)
	if set.Len() == 0 {
		delete(s.byNative, typename)
	}
}
