package store

import (
	"sort"
	"sync"
)

// subscribers is a registry of callbacks keyed by registration order.
type subscribers[T any] struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]T
}

func newSubscribers[T any]() *subscribers[T] {
	return &subscribers[T]{items: make(map[int]T)}
}

func (s *subscribers[T]) add(item T) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.items[id] = item
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.items, id)
			s.mu.Unlock()
		})
	}
}

// snapshot returns the registered callbacks in registration order so they
// can be invoked without holding the lock.
func (s *subscribers[T]) snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.items[id])
	}
	return out
}
