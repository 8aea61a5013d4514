package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrNoData marks a document the provider could not supply this cycle.
	ErrNoData = errors.New("no data this cycle")
)
