// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// Dependencies bundles everything the handlers call on the application
// layer. Using an interface bundle keeps the handler layer loosely coupled
// to implementations in other packages.
type Dependencies interface {
	UserService
	EventService
	TeamService
	SubmissionService
	ScoreService
	ObserverService
	CommentService
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	usersHandler       *UsersHandler
	eventsHandler      *EventsHandler
	teamsHandler       *TeamsHandler
	submissionsHandler *SubmissionsHandler
	scoresHandler      *ScoresHandler
	observersHandler   *ObserversHandler
	commentsHandler    *CommentsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		usersHandler:       NewUsersHandler(deps),
		eventsHandler:      NewEventsHandler(deps),
		teamsHandler:       NewTeamsHandler(deps),
		submissionsHandler: NewSubmissionsHandler(deps),
		scoresHandler:      NewScoresHandler(deps),
		observersHandler:   NewObserversHandler(deps),
		commentsHandler:    NewCommentsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))

	mux.HandleFunc("POST /users", MetricsMiddleware(s.usersHandler.HandleCreateUser, "users"))
	mux.HandleFunc("GET /users/{id}", MetricsMiddleware(s.usersHandler.HandleGetUser, "users"))

	mux.HandleFunc("POST /events", MetricsMiddleware(s.eventsHandler.HandleCreateEvent, "events"))
	mux.HandleFunc("GET /events", MetricsMiddleware(s.eventsHandler.HandleListEvents, "events"))
	mux.HandleFunc("GET /events/{id}", MetricsMiddleware(s.eventsHandler.HandleGetEvent, "events"))
	mux.HandleFunc("DELETE /events/{id}", MetricsMiddleware(s.eventsHandler.HandleDeleteEvent, "events"))
	mux.HandleFunc("POST /events/{id}/transition", MetricsMiddleware(s.eventsHandler.HandleTransitionEvent, "transition"))

	mux.HandleFunc("POST /events/{id}/teams", MetricsMiddleware(s.teamsHandler.HandleCreateTeam, "teams"))
	mux.HandleFunc("GET /events/{id}/teams", MetricsMiddleware(s.teamsHandler.HandleListTeams, "teams"))
	mux.HandleFunc("POST /teams/{id}/join", MetricsMiddleware(s.teamsHandler.HandleJoinTeam, "teams"))

	mux.HandleFunc("POST /events/{id}/submissions", MetricsMiddleware(s.submissionsHandler.HandleCreateSubmission, "submissions"))
	mux.HandleFunc("GET /submissions/{id}", MetricsMiddleware(s.submissionsHandler.HandleGetSubmission, "submissions"))
	mux.HandleFunc("PUT /submissions/{id}", MetricsMiddleware(s.submissionsHandler.HandleEditSubmission, "submissions"))
	mux.HandleFunc("POST /submissions/{id}/undo", MetricsMiddleware(s.submissionsHandler.HandleUndoSubmission, "undo"))
	mux.HandleFunc("POST /submissions/{id}/primary", MetricsMiddleware(s.submissionsHandler.HandleSetPrimary, "primary"))

	mux.HandleFunc("POST /submissions/{id}/scores", MetricsMiddleware(s.scoresHandler.HandleSubmitScore, "scores"))
	mux.HandleFunc("GET /submissions/{id}/score", MetricsMiddleware(s.scoresHandler.HandleGetFinalScore, "scores"))
	mux.HandleFunc("GET /events/{id}/leaderboard", MetricsMiddleware(s.scoresHandler.HandleGetLeaderboard, "leaderboard"))

	mux.HandleFunc("POST /events/{id}/comments", MetricsMiddleware(s.commentsHandler.HandleAddComment, "comments"))
	mux.HandleFunc("GET /events/{id}/comments", MetricsMiddleware(s.commentsHandler.HandleListComments, "comments"))

	mux.HandleFunc("POST /events/{id}/observers", MetricsMiddleware(s.observersHandler.HandleRegisterObserver, "observers"))
	mux.HandleFunc("GET /events/{id}/observers/pending", MetricsMiddleware(s.observersHandler.HandlePendingJudges, "observers"))
	mux.HandleFunc("POST /events/{id}/observers/{user}/approve", MetricsMiddleware(s.observersHandler.HandleApproveJudge, "observers"))
	mux.HandleFunc("POST /events/{id}/broadcast", MetricsMiddleware(s.observersHandler.HandleBroadcast, "broadcast"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates application layer errors into their HTTP
// status and wire code before writing the response.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
