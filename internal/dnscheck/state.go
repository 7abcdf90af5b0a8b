package dnscheck

import (
	"fmt"
	"sync"
)

// MatchState tracks, per resource, whether the most recent DNS query matched the resource's
// expected content. It is shared between the checker (which updates it) and the reconciliation
// controller (which reads it to compute the pending flag). The lock is never held across a
// network call.
type MatchState struct {
	mu      sync.Mutex
	matches map[string]bool
}

// NewMatchState creates a new, empty match state.
func NewMatchState() *MatchState {
	return &MatchState{matches: make(map[string]bool)}
}

// Key returns the state key for the resource with the given namespace and name.
func Key(namespace, name string) string {
	return fmt.Sprintf("%s:%s", namespace, name)
}

// Matches returns the last observed match for the given key, defaulting to false if the key has
// never been checked.
func (s *MatchState) Matches(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches[key]
}

// Update stores the given match for the given key and returns whether the value changed compared
// to the previous observation.
func (s *MatchState) Update(key string, matched bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.matches[key]
	s.matches[key] = matched
	return previous != matched
}

// Forget drops the state of the given key. It is called when a resource is cleaned up so that
// the map does not grow beyond the set of live resources.
func (s *MatchState) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, key)
}
