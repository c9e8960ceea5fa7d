package api

import (
	"errors"
	"net/http"

	"github.com/mmanav02/WeHack/internal/adapters/repository"
	service "github.com/mmanav02/WeHack/internal/app"
	"github.com/mmanav02/WeHack/internal/domain/guard"
	"github.com/mmanav02/WeHack/internal/domain/history"
	"github.com/mmanav02/WeHack/internal/domain/lifecycle"
	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/internal/domain/validate"
)

// ErrBadRequest is the sentinel for malformed or incomplete request bodies.
var ErrBadRequest = errors.New("bad request")

// classify maps an application layer error onto an HTTP status and a wire
// error code. Unknown errors stay opaque as internal errors.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, guard.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrAlreadyInPhase),
		errors.Is(err, history.ErrHistoryEmpty),
		errors.Is(err, service.ErrPhaseLocked),
		errors.Is(err, service.ErrAlreadyInTeam):
		return http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrNotTeamMember),
		errors.Is(err, service.ErrEventMismatch):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, validate.ErrValidationFailed),
		errors.Is(err, model.ErrMissingTeam),
		errors.Is(err, model.ErrMissingTitle),
		errors.Is(err, model.ErrMissingContent),
		errors.Is(err, service.ErrScoreOutOfRange),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
