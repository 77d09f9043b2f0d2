package usecase

import "errors"

var (
	// ErrInvalidRequest marks search requests rejected before any fetch.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUpstream marks a failed fetch from the news source.
	ErrUpstream = errors.New("news source unavailable")
)
