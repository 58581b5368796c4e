// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package messaging

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/utils"
	"github.com/MKhiriev/fav-sync/models"
)

//go:generate mockgen -source=hub.go -destination=../mock/messaging_mock.go -package=mock

// Endpoint answers the messages sent to one page.
type Endpoint interface {
	Deliver(ctx context.Context, msg models.Message) (models.Response, error)
}

// EndpointFunc adapts a function to [Endpoint].
type EndpointFunc func(ctx context.Context, msg models.Message) (models.Response, error)

func (f EndpointFunc) Deliver(ctx context.Context, msg models.Message) (models.Response, error) {
	return f(ctx, msg)
}

type page struct {
	info     models.PageInfo
	url      *url.URL
	endpoint Endpoint
	// focus orders pages by their last activation
	focus uint64
}

// Hub tracks open pages. It is safe for concurrent use.
type Hub struct {
	mu         sync.RWMutex
	pages      map[string]*page
	focusSeq   uint64
	onChange   map[int]func([]models.PageInfo)
	nextListen int

	patterns sync.Map // string -> *pattern

	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		pages:    make(map[string]*page),
		onChange: make(map[int]func([]models.PageInfo)),
		ids:      utils.NewUUIDGenerator(),
		now:      time.Now,
		logger:   log,
	}
}

// Register opens a page at rawURL answered by endpoint. The new page becomes
// the active one.
func (h *Hub) Register(rawURL string, endpoint Endpoint) (models.PageInfo, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return models.PageInfo{}, fmt.Errorf("%w: %q", ErrInvalidPageURL, rawURL)
	}

	info := models.PageInfo{
		ID:       h.ids.Generate(),
		URL:      rawURL,
		Origin:   Origin(u),
		OpenedAt: h.now().UTC(),
	}

	h.mu.Lock()
	h.focusSeq++
	h.pages[info.ID] = &page{info: info, url: u, endpoint: endpoint, focus: h.focusSeq}
	h.mu.Unlock()

	h.logger.Debug().Str("func", "Hub.Register").
		Str("page_id", info.ID).
		Str("url", rawURL).
		Msg("page registered")
	h.changed()
	return info, nil
}

// Unregister closes the page. It reports whether the page was open.
func (h *Hub) Unregister(id string) bool {
	h.mu.Lock()
	_, ok := h.pages[id]
	delete(h.pages, id)
	h.mu.Unlock()

	if ok {
		h.logger.Debug().Str("func", "Hub.Unregister").Str("page_id", id).Msg("page unregistered")
		h.changed()
	}
	return ok
}

// Focus makes the page the active one.
func (h *Hub) Focus(id string) error {
	h.mu.Lock()
	p, ok := h.pages[id]
	if ok {
		h.focusSeq++
		p.focus = h.focusSeq
	}
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnreachableTarget, id)
	}
	return nil
}

// Active returns the most recently opened or focused page.
func (h *Hub) Active() (models.PageInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var active *page
	for _, p := range h.pages {
		if active == nil || p.focus > active.focus {
			active = p
		}
	}
	if active == nil {
		return models.PageInfo{}, false
	}
	return active.info, true
}

// Page returns the page with id.
func (h *Hub) Page(id string) (models.PageInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.pages[id]
	if !ok {
		return models.PageInfo{}, false
	}
	return p.info, true
}

// Pages lists the open pages in opening order.
func (h *Hub) Pages() []models.PageInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sortedLocked(func(*page) bool { return true })
}

// Query returns the open pages whose URL matches pattern.
func (h *Hub) Query(_ context.Context, rawPattern string) ([]models.PageInfo, error) {
	p, err := h.pattern(rawPattern)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sortedLocked(func(pg *page) bool { return p.match(pg.url) }), nil
}

// Send delivers msg to the page with id and returns its answer.
func (h *Hub) Send(ctx context.Context, id string, msg models.Message) (models.Response, error) {
	h.mu.RLock()
	p, ok := h.pages[id]
	h.mu.RUnlock()
	if !ok {
		return models.Response{}, fmt.Errorf("%w: %s", ErrUnreachableTarget, id)
	}

	resp, err := p.endpoint.Deliver(ctx, msg)
	if err != nil {
		return models.Response{}, fmt.Errorf("%w: page %s: %w", ErrDeliveryFailed, id, err)
	}
	return resp, nil
}

// OnChange registers fn to receive the page list after every open or close.
func (h *Hub) OnChange(fn func([]models.PageInfo)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextListen
	h.nextListen++
	h.onChange[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.onChange, id)
		h.mu.Unlock()
	}
}

func (h *Hub) changed() {
	h.mu.RLock()
	pages := h.sortedLocked(func(*page) bool { return true })
	listeners := make([]func([]models.PageInfo), 0, len(h.onChange))
	for _, fn := range h.onChange {
		listeners = append(listeners, fn)
	}
	h.mu.RUnlock()

	for _, fn := range listeners {
		fn(pages)
	}
}

func (h *Hub) sortedLocked(keep func(*page) bool) []models.PageInfo {
	out := make([]models.PageInfo, 0, len(h.pages))
	for _, p := range h.pages {
		if keep(p) {
			out = append(out, p.info)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OpenedAt.Equal(out[j].OpenedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].OpenedAt.Before(out[j].OpenedAt)
	})
	return out
}

func (h *Hub) pattern(raw string) (*pattern, error) {
	if cached, ok := h.patterns.Load(raw); ok {
		return cached.(*pattern), nil
	}
	p, err := compilePattern(raw)
	if err != nil {
		return nil, err
	}
	h.patterns.Store(raw, p)
	return p, nil
}

// Origin returns the scheme://host[:port] part of u.
func Origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
