package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrSeasonClosed          = errors.New("season is closed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
