package domain

import "errors"

// Sentinel errors shared across layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrShareUnsupported    = errors.New("share not supported")
	ErrLocationUnavailable = errors.New("location unavailable")
)
