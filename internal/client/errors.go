package client

import "errors"

var (
	ErrNoAdapterFactory = errors.New("no adapter factory provided")
	ErrNoOutput         = errors.New("no output writer provided")
	ErrUploadFailed     = errors.New("upload failed")
	ErrPageAnswer       = errors.New("page answered with a failure")
)
