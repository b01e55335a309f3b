package ecs

import "sync"

// Shared guards a State with a mutex for use from several goroutines.
type Shared struct {
	mu    sync.Mutex
	state *State
}

// NewShared wraps state. The caller must stop using state directly.
func NewShared(state *State) *Shared {
	return &Shared{state: state}
}

// Do runs fn with exclusive access to the State.
func (s *Shared) Do(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// View runs fn with exclusive access to the State, for callers that cannot fail.
func (s *Shared) View(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}
