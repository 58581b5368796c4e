package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/models"
)

const (
	// socketQueueSize is how many events may wait for a slow page.
	socketQueueSize = 32
	// socketWriteWait bounds a single frame write.
	socketWriteWait = 5 * time.Second
)

// pageSocket opens a page bound to the websocket connection: the page is
// closed when the connection ends. The socket receives the page list after
// every open or close and the page favorites after every change. It accepts
// star frames and page messages (getFavorites, syncFromStorage).
func (h *Handler) pageSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, r, "Handler.pageSocket", ErrMissingPageURL)
		return
	}
	if err := h.validator.Validate(ctx, models.OpenPageRequest{URL: rawURL}); err != nil {
		writeError(w, r, "Handler.pageSocket", err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already answered the request
		logger.FromRequest(r).Err(err).Str("func", "Handler.pageSocket").Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	s := newSocket(conn, logger.FromRequest(r))
	defer s.close()

	info, err := h.services.PageService.Open(ctx, rawURL)
	if err != nil {
		s.send(models.SocketEvent{Type: models.EventError, Error: err.Error()})
		return
	}
	openSockets.Inc()
	defer openSockets.Dec()
	defer func() {
		if err := h.services.PageService.Close(context.WithoutCancel(ctx), info.ID); err != nil {
			s.logger.Warn().Err(err).Str("func", "Handler.pageSocket").Str("page_id", info.ID).Msg("page was already closed")
		}
	}()

	unsubscribe := h.services.PageService.OnPagesChange(func(pages []models.PageInfo) {
		s.send(models.SocketEvent{Type: models.EventPages, Pages: pages})
	})
	defer unsubscribe()

	unwatch, err := h.services.PageService.Watch(info.ID, func(favorites models.Favorites) {
		s.send(models.SocketEvent{Type: models.EventFavorites, Favorites: favorites})
	})
	if err == nil {
		defer unwatch()
	}

	s.send(models.SocketEvent{Type: models.EventOpened, Page: &info})
	s.send(models.SocketEvent{Type: models.EventPages, Pages: h.services.PageService.List(ctx)})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn().Err(err).Str("func", "Handler.pageSocket").Str("page_id", info.ID).Msg("websocket closed unexpectedly")
			}
			return
		}
		s.send(h.handleFrame(ctx, info.ID, raw))
	}
}

func (h *Handler) handleFrame(ctx context.Context, pageID string, raw []byte) models.SocketEvent {
	var frame models.SocketFrame
	if json.Unmarshal(raw, &frame) == nil && frame.Action == models.SocketStar {
		req := models.StarRequest{URL: frame.URL, IsConverted: frame.IsConverted}
		if err := h.validator.Validate(ctx, req); err != nil {
			return models.SocketEvent{Type: models.EventError, Error: err.Error()}
		}
		resp, err := h.services.PageService.ToggleStar(ctx, pageID, req)
		if err != nil {
			return models.SocketEvent{Type: models.EventError, Error: err.Error()}
		}
		return models.SocketEvent{Type: models.EventStar, Star: &resp}
	}

	// malformed frames reach the page as a malformed message and are
	// answered by it
	resp, err := h.services.PageService.Deliver(ctx, pageID, models.DecodeMessage(raw))
	if err != nil {
		return models.SocketEvent{Type: models.EventError, Error: err.Error()}
	}
	return models.SocketEvent{Type: models.EventResponse, Response: &resp}
}

// socket owns the writes to one connection. Events are queued and written by
// a single goroutine; when the queue is full new events are dropped, so a
// stalled peer never blocks the caller.
type socket struct {
	conn   *websocket.Conn
	queue  chan models.SocketEvent
	done   chan struct{}
	exited chan struct{}
	logger *logger.Logger
}

func newSocket(conn *websocket.Conn, log *logger.Logger) *socket {
	s := &socket{
		conn:   conn,
		queue:  make(chan models.SocketEvent, socketQueueSize),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		logger: log,
	}
	go s.writeLoop()
	return s
}

func (s *socket) send(event models.SocketEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.queue <- event:
	default:
		droppedSocketEvents.Inc()
		s.logger.Warn().Str("func", "socket.send").Str("type", string(event.Type)).Msg("websocket queue is full, dropping event")
	}
}

// close stops the writer after it has flushed what is already queued.
func (s *socket) close() {
	close(s.done)
	<-s.exited
}

func (s *socket) writeLoop() {
	defer close(s.exited)
	for {
		select {
		case event := <-s.queue:
			s.write(event)
		case <-s.done:
			for {
				select {
				case event := <-s.queue:
					s.write(event)
				default:
					return
				}
			}
		}
	}
}

func (s *socket) write(event models.SocketEvent) {
	if err := s.conn.SetWriteDeadline(time.Now().Add(socketWriteWait)); err != nil {
		s.logger.Debug().Err(err).Str("func", "socket.write").Msg("failed to set write deadline")
	}
	if err := s.conn.WriteJSON(event); err != nil {
		s.logger.Debug().Err(err).Str("func", "socket.write").Str("type", string(event.Type)).Msg("failed to write websocket frame")
	}
}
