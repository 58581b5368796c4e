package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/fav-sync/internal/logger"
)

type pageKey struct {
	origin string
	key    string
}

// MemoryPageStorage is an in-process page namespace.
type MemoryPageStorage struct {
	mu        sync.RWMutex
	items     map[pageKey]string
	observers *subscribers[WriteObserver]
}

func NewMemoryPageStorage() *MemoryPageStorage {
	return &MemoryPageStorage{
		items:     make(map[pageKey]string),
		observers: newSubscribers[WriteObserver](),
	}
}

func (m *MemoryPageStorage) GetItem(_ context.Context, origin, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[pageKey{origin, key}]
	return value, ok, nil
}

func (m *MemoryPageStorage) SetItem(ctx context.Context, origin, key, value string) error {
	if err := m.SetItemQuiet(ctx, origin, key, value); err != nil {
		return err
	}
	for _, observer := range m.observers.snapshot() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.FromContext(ctx).Error().
						Str("func", "MemoryPageStorage.SetItem").
						Interface("panic", r).
						Msg("page write observer panicked")
				}
			}()
			observer(ctx, origin, key, value)
		}()
	}
	return nil
}

func (m *MemoryPageStorage) SetItemQuiet(_ context.Context, origin, key, value string) error {
	m.mu.Lock()
	m.items[pageKey{origin, key}] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryPageStorage) OnWrite(observer WriteObserver) func() {
	return m.observers.add(observer)
}
