package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/models"
)

var jsonNull = json.RawMessage("null")

// MemoryNamespace is an in-process [Namespace]. A positive quota bounds the
// sum of key and value lengths the same way the PostgreSQL sync namespace
// does.
type MemoryNamespace struct {
	area  models.Area
	quota int

	mu    sync.RWMutex
	items map[string]json.RawMessage
	subs  *subscribers[ChangeListener]
}

func NewMemoryNamespace(area models.Area, quotaBytes int) *MemoryNamespace {
	return &MemoryNamespace{
		area:  area,
		quota: quotaBytes,
		items: make(map[string]json.RawMessage),
		subs:  newSubscribers[ChangeListener](),
	}
}

func (m *MemoryNamespace) Area() models.Area {
	return m.area
}

func (m *MemoryNamespace) Get(_ context.Context, keys ...string) (map[string]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return selectKeys(m.items, keys), nil
}

func (m *MemoryNamespace) Set(ctx context.Context, items map[string]json.RawMessage) error {
	normalized, err := normalizeItems(items)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.quota > 0 {
		next := maps.Clone(m.items)
		maps.Copy(next, normalized)
		if used := usedBytes(next); used > m.quota {
			m.mu.Unlock()
			return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, used, m.quota)
		}
	}
	maps.Copy(m.items, normalized)
	m.mu.Unlock()

	publish(ctx, m.subs, models.ChangeEvent{Area: m.area, ChangedKeys: sortedKeys(normalized)})
	return nil
}

func (m *MemoryNamespace) Subscribe(listener ChangeListener) func() {
	return m.subs.add(listener)
}

// normalizeItems turns nil values into JSON null and rejects anything that
// is not a JSON document.
func normalizeItems(items map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(items))
	for key, value := range items {
		if len(value) == 0 {
			out[key] = jsonNull
			continue
		}
		if !json.Valid(value) {
			return nil, fmt.Errorf("%w: key %q", ErrInvalidValue, key)
		}
		out[key] = append(json.RawMessage(nil), value...)
	}
	return out, nil
}

func selectKeys(items map[string]json.RawMessage, keys []string) map[string]json.RawMessage {
	if len(keys) == 0 {
		return maps.Clone(items)
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		if value, ok := items[key]; ok {
			out[key] = value
		}
	}
	return out
}

func usedBytes(items map[string]json.RawMessage) int {
	total := 0
	for key, value := range items {
		total += len(key) + len(value)
	}
	return total
}

func sortedKeys[V any](items map[string]V) []string {
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// publish delivers event to every listener in registration order. A
// panicking listener is logged and skipped.
func publish(ctx context.Context, subs *subscribers[ChangeListener], event models.ChangeEvent) {
	if len(event.ChangedKeys) == 0 {
		return
	}
	for _, listener := range subs.snapshot() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.FromContext(ctx).Error().
						Str("func", "store.publish").
						Str("area", string(event.Area)).
						Interface("panic", r).
						Msg("change listener panicked")
				}
			}()
			listener(ctx, event)
		}()
	}
}
