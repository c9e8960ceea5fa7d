package guard

import "errors"

// ErrRateLimited reports a write inside the cooldown window.
var ErrRateLimited = errors.New("rate limited")
