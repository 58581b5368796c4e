package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/messaging"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/models"
)

type pageService struct {
	registry   PageRegistry
	pages      store.PageStorage
	reconciler *Reconciler
	bootstrap  *Bootstrap
	codec      *Codec

	mu     sync.RWMutex
	agents map[string]*PageAgent

	logger *logger.Logger
}

func NewPageService(registry PageRegistry, pages store.PageStorage, reconciler *Reconciler, bootstrap *Bootstrap, codec *Codec, log *logger.Logger) PageService {
	return newPageService(registry, pages, reconciler, bootstrap, codec, log)
}

func newPageService(registry PageRegistry, pages store.PageStorage, reconciler *Reconciler, bootstrap *Bootstrap, codec *Codec, log *logger.Logger) *pageService {
	return &pageService{
		registry:   registry,
		pages:      pages,
		reconciler: reconciler,
		bootstrap:  bootstrap,
		codec:      codec,
		agents:     make(map[string]*PageAgent),
		logger:     log,
	}
}

// Open registers a page at rawURL and runs its load pipeline. Pipeline
// failures are logged; the page stays open.
func (s *pageService) Open(ctx context.Context, rawURL string) (models.PageInfo, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return models.PageInfo{}, fmt.Errorf("%w: %q", messaging.ErrInvalidPageURL, rawURL)
	}

	agent := NewPageAgent(messaging.Origin(u), s.pages, s.reconciler, s.bootstrap, s.codec, s.logger)
	info, err := s.registry.Register(rawURL, agent)
	if err != nil {
		return models.PageInfo{}, err
	}

	s.mu.Lock()
	s.agents[info.ID] = agent
	s.mu.Unlock()

	result, err := agent.Load(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "pageService.Open").
			Str("page_id", info.ID).
			Msg("page load pipeline failed")
	} else {
		s.logger.Info().Str("func", "pageService.Open").
			Str("page_id", info.ID).
			Str("url", rawURL).
			Bool("pushed", result.Pushed).
			Str("drain", string(result.Drain)).
			Msg("page opened")
	}

	return info, nil
}

func (s *pageService) Close(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.agents, id)
	s.mu.Unlock()

	if !s.registry.Unregister(id) {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	s.logger.Info().Str("func", "pageService.Close").Str("page_id", id).Msg("page closed")
	return nil
}

func (s *pageService) List(context.Context) []models.PageInfo {
	return s.registry.Pages()
}

func (s *pageService) Focus(_ context.Context, id string) error {
	if err := s.registry.Focus(id); err != nil {
		return notFound(id, err)
	}
	return nil
}

// Favorites asks the page for its list the same way the upload does.
func (s *pageService) Favorites(ctx context.Context, id string) (models.Response, error) {
	return s.Deliver(ctx, id, models.GetFavoritesMessage())
}

func (s *pageService) Deliver(ctx context.Context, id string, msg models.Message) (models.Response, error) {
	resp, err := s.registry.Send(ctx, id, msg)
	if err != nil {
		return models.Response{}, notFound(id, err)
	}
	return resp, nil
}

func (s *pageService) Replace(ctx context.Context, id string, favorites models.Favorites) (models.Favorites, error) {
	agent, err := s.agent(id)
	if err != nil {
		return nil, err
	}
	return agent.Replace(ctx, favorites)
}

func (s *pageService) ToggleStar(ctx context.Context, id string, req models.StarRequest) (models.StarResponse, error) {
	agent, err := s.agent(id)
	if err != nil {
		return models.StarResponse{}, err
	}
	return agent.ToggleStar(ctx, req)
}

func (s *pageService) Watch(id string, fn func(models.Favorites)) (func(), error) {
	agent, err := s.agent(id)
	if err != nil {
		return nil, err
	}
	return agent.Watch(fn), nil
}

func (s *pageService) OnPagesChange(fn func([]models.PageInfo)) func() {
	return s.registry.OnChange(fn)
}

// Agents returns the agents of every open page.
func (s *pageService) Agents() []*PageAgent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*PageAgent, 0, len(s.agents))
	for _, agent := range s.agents {
		out = append(out, agent)
	}
	return out
}

// DrainAll drains the staging store into one page per open origin and
// returns how many of them merged new favorites.
func (s *pageService) DrainAll(ctx context.Context) int {
	merged := 0
	seen := make(map[string]struct{})
	for _, agent := range s.Agents() {
		if _, ok := seen[agent.Origin()]; ok {
			continue
		}
		seen[agent.Origin()] = struct{}{}

		outcome, err := agent.Drain(ctx)
		if err != nil {
			s.logger.Err(err).Str("func", "pageService.DrainAll").Str("origin", agent.Origin()).Msg("drain failed")
			continue
		}
		if outcome == DrainArchived {
			merged++
		}
	}
	return merged
}

func (s *pageService) agent(id string) (*PageAgent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agent, ok := s.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	return agent, nil
}

func notFound(id string, err error) error {
	if errors.Is(err, messaging.ErrUnreachableTarget) {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	return err
}
