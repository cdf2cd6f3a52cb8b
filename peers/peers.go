package peers

import (
	"sync"
)

// Set is a deduplicated collection of peer locators, safe for concurrent
// use by the transport layer.
type Set struct {
	mu      sync.RWMutex
	members map[string]Locator
}

func NewSet() *Set {
	return &Set{
		members: make(map[string]Locator),
	}
}

// Add inserts a locator. Re-adding an existing peer is a no-op; the return
// value reports whether the set grew.
func (s *Set) Add(l Locator) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[l.String()]; ok {
		return false
	}
	s.members[l.String()] = l
	return true
}

// All returns a snapshot of the current peers.
func (s *Set) All() []Locator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Locator, 0, len(s.members))
	for _, l := range s.members {
		out = append(out, l)
	}
	return out
}

// Len returns the number of known peers.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}
