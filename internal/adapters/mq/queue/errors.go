package queue

import "errors"

// ErrClosed reports an operation against a closed outbox.
var ErrClosed = errors.New("outbox closed")
