package history

import "errors"

// ErrHistoryEmpty reports an undo against a team with no retained versions.
var ErrHistoryEmpty = errors.New("no history to undo")
