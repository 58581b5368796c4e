package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrQuotaExceeded       = errors.New("sync storage quota exceeded")
	ErrEmptyAddress        = errors.New("empty address")
)
