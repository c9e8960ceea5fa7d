package service

import (
	"errors"
)

// Sentinel kinds for orchestration failures. These allow errors.Is from callers.
var (
	// ErrNotTeamMember rejects writes from users outside the owning team.
	ErrNotTeamMember = errors.New("user is not a member of the team")

	// ErrEventMismatch rejects writes that cross event boundaries.
	ErrEventMismatch = errors.New("entity does not belong to this event")

	// ErrAlreadyInTeam enforces one team per user per event.
	ErrAlreadyInTeam = errors.New("user already belongs to a team in this event")

	// ErrPhaseLocked rejects operations once judging has started.
	ErrPhaseLocked = errors.New("operation not allowed in the current phase")

	// ErrScoreOutOfRange rejects judge criteria outside 0..10.
	ErrScoreOutOfRange = errors.New("score criteria must be between 0 and 10")
)
