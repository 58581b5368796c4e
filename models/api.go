package models

// ErrorResponse is the body of every failed daemon API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SocketAction is the discriminant of a frame sent by a websocket page.
// Frames with any other action are page messages and decoded as such.
type SocketAction string

const SocketStar SocketAction = "star"

// SocketFrame is a star frame sent by a websocket page.
type SocketFrame struct {
	Action      SocketAction `json:"action"`
	URL         string       `json:"url,omitempty"`
	IsConverted bool         `json:"isConverted,omitempty"`
}

// SocketEventType tells what a frame sent to a websocket page carries.
type SocketEventType string

const (
	EventOpened    SocketEventType = "opened"
	EventPages     SocketEventType = "pages"
	EventFavorites SocketEventType = "favorites"
	EventStar      SocketEventType = "star"
	EventResponse  SocketEventType = "response"
	EventError     SocketEventType = "error"
)

// SocketEvent is a frame sent to a websocket page. Only the field matching
// Type is set.
type SocketEvent struct {
	Type      SocketEventType `json:"type"`
	Page      *PageInfo       `json:"page,omitempty"`
	Pages     []PageInfo      `json:"pages,omitempty"`
	Favorites Favorites       `json:"favorites,omitempty"`
	Star      *StarResponse   `json:"star,omitempty"`
	Response  *Response       `json:"response,omitempty"`
	Error     string          `json:"error,omitempty"`
}
