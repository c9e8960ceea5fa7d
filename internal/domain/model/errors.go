package model

import "errors"

// Sentinel kinds for submission construction. These allow errors.Is from callers.
var (
	ErrMissingTeam  = errors.New("submission requires a team")
	ErrMissingTitle = errors.New("submission requires a title")
)

// ErrMissingContent rejects a comment with no text.
var ErrMissingContent = errors.New("comment requires content")
