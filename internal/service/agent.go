package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/fav-sync/internal/app"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

// PageAgent acts inside one open page: it answers the messages the page
// receives, runs the load pipeline once and performs user actions on the
// page store.
type PageAgent struct {
	origin     string
	pages      store.PageStorage
	reconciler *Reconciler
	bootstrap  *Bootstrap
	codec      *Codec
	logger     *logger.Logger

	loadOnce   sync.Once
	loadResult BootstrapResult
	loadErr    error

	mu       sync.Mutex
	nextID   int
	watchers map[int]func(models.Favorites)
}

func NewPageAgent(origin string, pages store.PageStorage, reconciler *Reconciler, bootstrap *Bootstrap, codec *Codec, log *logger.Logger) *PageAgent {
	return &PageAgent{
		origin:     origin,
		pages:      pages,
		reconciler: reconciler,
		bootstrap:  bootstrap,
		codec:      codec,
		logger:     log.WithStr("origin", origin),
		watchers:   make(map[int]func(models.Favorites)),
	}
}

// Origin returns the page store origin of the page.
func (a *PageAgent) Origin() string {
	return a.origin
}

// Load runs the page load pipeline. Only the first call runs it; later calls
// return the first result.
func (a *PageAgent) Load(ctx context.Context) (BootstrapResult, error) {
	a.loadOnce.Do(func() {
		a.loadResult, a.loadErr = a.bootstrap.Run(ctx, a.origin)
		if a.loadResult.Merge.HasNew {
			a.notify(a.loadResult.Merge.Favorites)
		}
	})
	return a.loadResult, a.loadErr
}

// Drain merges what is staged into the page store outside the load
// pipeline.
func (a *PageAgent) Drain(ctx context.Context) (DrainOutcome, error) {
	outcome, merge, err := a.bootstrap.Drain(ctx, a.origin)
	if merge.HasNew {
		a.notify(merge.Favorites)
	}
	return outcome, err
}

// Deliver handles a message sent to the page.
func (a *PageAgent) Deliver(ctx context.Context, msg models.Message) (models.Response, error) {
	switch msg.Action {
	case models.ActionGetFavorites:
		return a.getFavorites(ctx)

	case models.ActionSyncFromStorage:
		result, err := a.reconciler.Apply(ctx, a.origin, msg.Favorites)
		if err != nil {
			return models.Response{Success: false, Error: err.Error()}, nil
		}
		if result.HasNew {
			a.notify(result.Favorites)
		}
		return models.Response{Success: true, Favorites: result.Favorites}, nil

	default:
		a.logger.Warn().Str("func", "PageAgent.Deliver").
			Str("action", string(msg.Action)).
			Str("reason", msg.Reason).
			Msg("ignoring malformed message")
		return models.Response{
			Success: false,
			Error:   fmt.Sprintf("%s: %s", app.MsgMalformedMessagePrefix, msg.Reason),
		}, nil
	}
}

func (a *PageAgent) getFavorites(ctx context.Context) (models.Response, error) {
	value, ok, err := a.pages.GetItem(ctx, a.origin, models.KeyFavorites)
	if err != nil {
		return models.Response{}, err
	}
	if !ok {
		a.logger.Debug().Str("func", "PageAgent.getFavorites").Msg("no favorites found in page storage")
		return models.Response{Success: false, Error: app.MsgNoFavoritesInPage}, nil
	}

	favorites, err := a.codec.DecodeString(ctx, value)
	if err != nil {
		return models.Response{
			Success: false,
			Error:   fmt.Sprintf("%s: %v", app.MsgParseFavoritesFailed, err),
		}, nil
	}
	return models.Response{Success: true, Favorites: favorites}, nil
}

// Replace stores favorites as the whole page list through the observed
// write path.
func (a *PageAgent) Replace(ctx context.Context, favorites models.Favorites) (models.Favorites, error) {
	if err := a.write(ctx, favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// ToggleStar removes req.URL from the page list when present and appends it
// otherwise. The write goes through the observed path.
func (a *PageAgent) ToggleStar(ctx context.Context, req models.StarRequest) (models.StarResponse, error) {
	local, _, err := a.reconciler.Local(ctx, a.origin)
	if err != nil && !errors.Is(err, ErrDecode) {
		return models.StarResponse{}, err
	}

	starred := !local.Contains(req.URL)
	next := make(models.Favorites, 0, len(local)+1)
	for _, item := range local {
		if item.URL != req.URL {
			next = append(next, item)
		}
	}
	if starred {
		next = append(next, models.Favorite{URL: req.URL, IsConverted: req.IsConverted})
	}

	if err = a.write(ctx, next); err != nil {
		return models.StarResponse{}, err
	}
	return models.StarResponse{Starred: starred, Favorites: next}, nil
}

func (a *PageAgent) write(ctx context.Context, favorites models.Favorites) error {
	raw, err := a.codec.Encode(favorites)
	if err != nil {
		return err
	}
	if err = a.pages.SetItem(ctx, a.origin, models.KeyFavorites, string(raw)); err != nil {
		a.logger.Err(err).Str("func", "PageAgent.write").Msg("failed to write page favorites")
		return err
	}
	a.notify(favorites)
	return nil
}

// Watch registers fn to receive the page list after every change made
// through this agent.
func (a *PageAgent) Watch(fn func(models.Favorites)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.watchers[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.watchers, id)
		a.mu.Unlock()
	}
}

func (a *PageAgent) notify(favorites models.Favorites) {
	a.mu.Lock()
	watchers := make([]func(models.Favorites), 0, len(a.watchers))
	for _, fn := range a.watchers {
		watchers = append(watchers, fn)
	}
	a.mu.Unlock()

	for _, fn := range watchers {
		fn(favorites)
	}
}
