package core

import "errors"

// Common errors.
var (
	ErrNotFound         = errors.New("note not found")
	ErrReadOnly         = errors.New("repository is in read-only mode")
	ErrInvalidID        = errors.New("invalid note id")
	ErrWatchUnsupported = errors.New("repository does not support watching")
)
