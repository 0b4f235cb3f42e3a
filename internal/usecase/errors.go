package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrUnsupportedSeason     = errors.New("season has no scoring support")
	ErrMalformedPayload      = errors.New("malformed upstream payload")
)
