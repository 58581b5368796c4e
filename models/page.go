package models

import "time"

// PageInfo describes an open page known to the messaging hub.
type PageInfo struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	Origin   string    `json:"origin"`
	OpenedAt time.Time `json:"openedAt"`
}

// OpenPageRequest is the body of POST /api/pages.
type OpenPageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// StarRequest toggles a single favorite on a page.
type StarRequest struct {
	URL         string `json:"url" validate:"required"`
	IsConverted bool   `json:"isConverted"`
}

// StarResponse reports the state of the favorite after a toggle.
type StarResponse struct {
	Starred   bool      `json:"starred"`
	Favorites Favorites `json:"favorites"`
}
