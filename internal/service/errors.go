package service

import "errors"

var (
	// ErrDecode is returned for a stored or received favorites payload that
	// is not a well-formed list of favorites.
	ErrDecode = errors.New("malformed favorites payload")

	// ErrPageNotFound is returned for operations on a page that is not open.
	ErrPageNotFound = errors.New("page not found")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
