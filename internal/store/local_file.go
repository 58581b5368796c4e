package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/models"
)

// LocalNamespace is the device-local namespace persisted as one JSON object
// in a file. ":memory:" (or an empty path) keeps it in process only.
type LocalNamespace struct {
	path     string
	inMemory bool

	mu    sync.RWMutex
	items map[string]json.RawMessage
	subs  *subscribers[ChangeListener]

	logger *logger.Logger
}

func NewLocalNamespace(path string, log *logger.Logger) (*LocalNamespace, error) {
	if path == "" {
		path = ":memory:"
	}

	l := &LocalNamespace{
		path:     path,
		inMemory: path == ":memory:" || path == "memory",
		items:    make(map[string]json.RawMessage),
		subs:     newSubscribers[ChangeListener](),
		logger:   log,
	}
	items, err := l.load()
	if err != nil {
		return nil, err
	}
	l.items = items
	return l, nil
}

func (l *LocalNamespace) Area() models.Area {
	return models.AreaLocal
}

func (l *LocalNamespace) Get(_ context.Context, keys ...string) (map[string]json.RawMessage, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return selectKeys(l.items, keys), nil
}

func (l *LocalNamespace) Set(ctx context.Context, items map[string]json.RawMessage) error {
	normalized, err := normalizeItems(items)
	if err != nil {
		return err
	}

	l.mu.Lock()
	next := maps.Clone(l.items)
	maps.Copy(next, normalized)
	if err = l.persist(next); err != nil {
		l.mu.Unlock()
		logger.FromContext(ctx).Err(err).Str("func", "LocalNamespace.Set").Msg("error persisting local storage")
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	l.items = next
	l.mu.Unlock()

	publish(ctx, l.subs, models.ChangeEvent{Area: models.AreaLocal, ChangedKeys: sortedKeys(normalized)})
	return nil
}

func (l *LocalNamespace) Subscribe(listener ChangeListener) func() {
	return l.subs.add(listener)
}

// Run watches the backing file and publishes keys changed by other
// processes. It returns immediately for an in-memory namespace.
func (l *LocalNamespace) Run(ctx context.Context) error {
	if l.inMemory {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create local storage watcher: %w", err)
	}
	defer watcher.Close()

	// the file is replaced by rename on every persist, so the directory is
	// watched instead of the file
	dir := filepath.Dir(l.path)
	if err = watcher.Add(dir); err != nil {
		return fmt.Errorf("watch local storage dir: %w", err)
	}
	target := filepath.Clean(l.path)

	l.logger.Info().Str("func", "LocalNamespace.Run").Str("path", l.path).Msg("watching local storage file")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			l.reload(l.logger.WithContext(ctx))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Err(err).Str("func", "LocalNamespace.Run").Msg("local storage watcher error")
		}
	}
}

// reload re-reads the file and publishes the keys whose values differ from
// what is held in memory. Writes made through Set produce no difference.
func (l *LocalNamespace) reload(ctx context.Context) {
	items, err := l.load()
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "LocalNamespace.reload").Msg("error reloading local storage")
		return
	}

	l.mu.Lock()
	changed := diffKeys(l.items, items)
	l.items = items
	l.mu.Unlock()

	publish(ctx, l.subs, models.ChangeEvent{Area: models.AreaLocal, ChangedKeys: changed, External: true})
}

func (l *LocalNamespace) load() (map[string]json.RawMessage, error) {
	items := make(map[string]json.RawMessage)
	if l.inMemory {
		return items, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return items, nil
		}
		return nil, fmt.Errorf("read local storage file: %w", err)
	}
	if len(data) == 0 {
		return items, nil
	}

	if err = json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode local storage file: %w", err)
	}
	if items == nil {
		items = make(map[string]json.RawMessage)
	}
	return items, nil
}

func (l *LocalNamespace) persist(items map[string]json.RawMessage) error {
	if l.inMemory {
		return nil
	}

	dir := filepath.Dir(l.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create local storage temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write local storage file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}
	if err = os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replace local storage file: %w", err)
	}

	return nil
}

func diffKeys(old, current map[string]json.RawMessage) []string {
	changed := make(map[string]struct{})
	for key, value := range current {
		if prev, ok := old[key]; !ok || !jsonEqual(prev, value) {
			changed[key] = struct{}{}
		}
	}
	for key := range old {
		if _, ok := current[key]; !ok {
			changed[key] = struct{}{}
		}
	}
	return sortedKeys(changed)
}

// jsonEqual compares two documents ignoring formatting.
func jsonEqual(a, b json.RawMessage) bool {
	var va, vb any
	if json.Unmarshal(a, &va) != nil || json.Unmarshal(b, &vb) != nil {
		return string(a) == string(b)
	}
	ca, _ := json.Marshal(va)
	cb, _ := json.Marshal(vb)
	return string(ca) == string(cb)
}
