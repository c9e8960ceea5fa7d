package lifecycle

import "errors"

// Sentinel kinds for transition outcomes. These allow errors.Is from callers.
var (
	// ErrInvalidTransition reports an action that is illegal for the
	// current phase.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAlreadyInPhase reports an action whose target is the phase the
	// event is already in.
	ErrAlreadyInPhase = errors.New("already in target phase")
)
