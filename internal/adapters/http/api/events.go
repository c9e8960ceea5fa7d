// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmanav02/WeHack/internal/domain/lifecycle"
	"github.com/mmanav02/WeHack/internal/domain/model"
)

// EventService defines the application operations event handlers call.
type EventService interface {
	CreateEvent(ctx context.Context, e model.Event) (model.Event, error)
	GetEvent(ctx context.Context, eventID string) (model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	TransitionEvent(ctx context.Context, eventID string, action lifecycle.Action) (model.Event, error)
}

// EventsHandler handles event requests.
type EventsHandler struct {
	deps EventService
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventService) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// eventRequest mirrors the wire schema for POST /events.
type eventRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	ScoringMethod string `json:"scoring_method"`
	MailMode      string `json:"mail_mode"`
	SlackEnabled  bool   `json:"slack_enabled"`
	OrganizerID   string `json:"organizer_id"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(e.OrganizerID) == "":
		return errors.New("missing organizer_id")
	}
	for _, ts := range []string{e.StartsAt, e.EndsAt} {
		if ts == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, ts); err != nil {
			return errors.New("invalid timestamp; must be RFC3339")
		}
	}
	if e.ScoringMethod != "" {
		switch model.ScoringMethod(e.ScoringMethod) {
		case model.SimpleAverage, model.WeightedAverage:
		default:
			return fmt.Errorf("unknown scoring_method %q", e.ScoringMethod)
		}
	}
	if e.MailMode != "" {
		switch model.MailMode(e.MailMode) {
		case model.MailgunMode, model.OrganizerMode, model.DisabledMode:
		default:
			return fmt.Errorf("unknown mail_mode %q", e.MailMode)
		}
	}
	return nil
}

func (e eventRequest) toModel() model.Event {
	out := model.Event{
		Title:         e.Title,
		Description:   e.Description,
		ScoringMethod: model.ScoringMethod(e.ScoringMethod),
		MailMode:      model.MailMode(e.MailMode),
		SlackEnabled:  e.SlackEnabled,
		OrganizerID:   e.OrganizerID,
	}
	if t, err := time.Parse(time.RFC3339, e.StartsAt); err == nil {
		out.StartsAt = t
	}
	if t, err := time.Parse(time.RFC3339, e.EndsAt); err == nil {
		out.EndsAt = t
	}
	return out
}

// eventResponse is the read shape for a single event.
type eventResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	StartsAt      string `json:"starts_at,omitempty"`
	EndsAt        string `json:"ends_at,omitempty"`
	Phase         string `json:"phase"`
	ScoringMethod string `json:"scoring_method"`
	MailMode      string `json:"mail_mode"`
	SlackEnabled  bool   `json:"slack_enabled"`
	OrganizerID   string `json:"organizer_id"`
}

func toEventResponse(e model.Event) eventResponse {
	out := eventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Phase:         e.Phase.String(),
		ScoringMethod: string(e.ScoringMethod),
		MailMode:      string(e.MailMode),
		SlackEnabled:  e.SlackEnabled,
		OrganizerID:   e.OrganizerID,
	}
	if !e.StartsAt.IsZero() {
		out.StartsAt = e.StartsAt.Format(time.RFC3339)
	}
	if !e.EndsAt.IsZero() {
		out.EndsAt = e.EndsAt.Format(time.RFC3339)
	}
	return out
}

// HandleCreateEvent handles POST /events requests.
func (h *EventsHandler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	saved, err := h.deps.CreateEvent(r.Context(), req.toModel())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(saved))
}

// HandleListEvents handles GET /events requests.
func (h *EventsHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.deps.ListEvents(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetEvent handles GET /events/{id} requests.
func (h *EventsHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.deps.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleDeleteEvent handles DELETE /events/{id} requests. Deletion cascades
// to the event's teams, submissions, history and observers.
func (h *EventsHandler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transitionRequest struct {
	Action string `json:"action"`
}

// HandleTransitionEvent handles POST /events/{id}/transition requests.
func (h *EventsHandler) HandleTransitionEvent(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	action, ok := lifecycle.ParseAction(req.Action)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: unknown action %q", ErrBadRequest, req.Action))
		return
	}
	event, err := h.deps.TransitionEvent(r.Context(), r.PathValue("id"), action)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}
