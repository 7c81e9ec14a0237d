package filter

import (
	"sync"

	"restate/internal/model"
)

// Store holds the currently applied filters.
// It is created once by the composition root and handed to its consumers.
type Store struct {
	mu      sync.RWMutex
	current model.FilterShape
	subs    map[int]func(model.FilterShape)
	nextSub int
}

// NewStore creates a store holding initial
func NewStore(initial model.FilterShape) *Store {
	return &Store{
		current: initial.Clone(),
		subs:    make(map[int]func(model.FilterShape)),
	}
}

// Get returns a copy of the applied filters
func (s *Store) Get() model.FilterShape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Replace swaps the applied filters wholesale and notifies subscribers
func (s *Store) Replace(f model.FilterShape) {
	s.mu.Lock()
	s.current = f.Clone()
	subs := make([]func(model.FilterShape), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	snapshot := s.current.Clone()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot.Clone())
	}
}

// Subscribe registers fn to run after every Replace.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(model.FilterShape)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
