// Package lifecycle implements the event phase state machine.
//
// The machine is a pure function over (current phase, action). Callers own
// persisting the returned phase and firing any notifications afterwards;
// Transition itself has no side effects.
package lifecycle

import (
	"fmt"

	"github.com/mmanav02/WeHack/internal/domain/model"
)

// Action is a requested phase transition.
type Action string

// Supported transition actions.
const (
	Publish      Action = "publish"
	BeginJudging Action = "begin-judging"
	Complete     Action = "complete"
)

// ParseAction maps a wire name to an Action.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case Publish, BeginJudging, Complete:
		return Action(s), true
	default:
		return "", false
	}
}

// target returns the phase an action drives toward.
func (a Action) target() (model.Phase, bool) {
	switch a {
	case Publish:
		return model.Published, true
	case BeginJudging:
		return model.Judging, true
	case Complete:
		return model.Completed, true
	default:
		return model.Draft, false
	}
}

// Transition applies action to the current phase and returns the next phase.
//
// Phases advance strictly forward through
// Draft -> Published -> Judging -> Completed. An action whose target is the
// current phase yields ErrAlreadyInPhase; any other mismatch yields
// ErrInvalidTransition. Both leave the phase unchanged and are distinct so
// callers can tell a no-op from a blocked request.
func Transition(current model.Phase, action Action) (model.Phase, error) {
	next, ok := action.target()
	if !ok {
		return current, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, string(action))
	}
	if next == current {
		return current, fmt.Errorf("%w: event is already %s", ErrAlreadyInPhase, current)
	}
	if next != current+1 {
		return current, fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, current)
	}
	return next, nil
}
