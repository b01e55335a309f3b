package ecs

import "iter"

// Query lists the visible components of a single native type.
// Results reflect the State at the time Iter is called; the State may be modified while
// iterating.
type Query struct {
	state    *State
	typename string
}

// NewQuery creates a Query over the given native type.
func NewQuery(state *State, typename string) *Query {
	return &Query{state: state, typename: typename}
}

// Init initializes or re-initializes the Query.
// Called by the Scheduler during system registration.
func (q *Query) Init(state *State, typename string) {
	q.state = state
	q.typename = typename
}

// Typename returns the native type the query matches.
func (q *Query) Typename() string {
	return q.typename
}

// Iter returns an iterator over the matching component ids.
func (q *Query) Iter() iter.Seq[ComponentId] {
	ids := q.state.VisibleNativeComponents(q.typename)
	return func(yield func(ComponentId) bool) {
		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}

// Iter2 returns an iterator over matching components paired with their owner.
func (q *Query) Iter2() iter.Seq2[EntityId, ComponentId] {
	ids := q.state.VisibleNativeComponents(q.typename)
	return func(yield func(EntityId, ComponentId) bool) {
		for _, id := range ids {
			owner, err := q.state.Owner(id)
			if err != nil {
				continue
			}
			if !yield(owner, id) {
				return
			}
		}
	}
}

// OwnedBy returns the matching components owned by entity.
func (q *Query) OwnedBy(entity EntityId) []ComponentId {
	var ids []ComponentId
	for owner, id := range q.Iter2() {
		if owner == entity {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of matching components.
func (q *Query) Len() int {
	if set, ok := q.state.byNative[q.typename]; ok {
		return set.Len()
	}
	return 0
}
