package storage

import "errors"

// Sentinel kinds for blob storage errors.
var (
	ErrEmptyObject    = errors.New("empty object")
	ErrObjectTooLarge = errors.New("object too large")
)
