package loader

import "sync"

// LoadingSet tracks the specifiers currently in flight for one loader,
// for circular-dependency detection only; it plays no part in cache
// correctness. TryInsert is a single atomic check-and-insert so that two
// concurrent first-time loads of the same specifier cannot both pass the
// cycle check.
type LoadingSet struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewLoadingSet creates an empty loading set.
func NewLoadingSet() *LoadingSet {
	return &LoadingSet{inFlight: make(map[string]struct{})}
}

// TryInsert inserts specifier if absent and reports whether the insert
// happened. A false return means the specifier was already in flight.
func (s *LoadingSet) TryInsert(specifier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[specifier]; ok {
		return false
	}
	s.inFlight[specifier] = struct{}{}
	return true
}

// Remove takes specifier out of the set. Removing an absent specifier is
// a no-op. Callers must arrange for Remove to run on every exit path of a
// load, including failure and cancellation, or the specifier stays stuck
// and every later attempt reports a false cycle.
func (s *LoadingSet) Remove(specifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, specifier)
}

// Contains reports whether specifier is currently in flight.
func (s *LoadingSet) Contains(specifier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[specifier]
	return ok
}

// Len returns the number of in-flight specifiers.
func (s *LoadingSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight)
}
