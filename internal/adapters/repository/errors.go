package repository

import "errors"

// ErrNotFound reports a lookup for an id the store does not hold.
var ErrNotFound = errors.New("not found")
