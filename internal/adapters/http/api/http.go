// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	repository "github.com/Triptiverma003/Ranking-System/internal/adapters/repository"
	service "github.com/Triptiverma003/Ranking-System/internal/app"
	"github.com/Triptiverma003/Ranking-System/internal/domain/model"
	"github.com/Triptiverma003/Ranking-System/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Register(ctx context.Context, name, image string) (model.Participant, error)
	Roster(ctx context.Context) ([]model.Participant, error)
	Claim(ctx context.Context, participantID string) (model.ClaimResult, error)
	Leaderboard(ctx context.Context, limit int) ([]types.RankedEntry, error)
	History(ctx context.Context, participantID string, order types.Order) (types.HistoryPage, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	participantsHandler *ParticipantsHandler
	claimHandler        *ClaimHandler
	leaderboardHandler  *LeaderboardHandler
	historyHandler      *HistoryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		participantsHandler: NewParticipantsHandler(deps),
		claimHandler:        NewClaimHandler(deps),
		leaderboardHandler:  NewLeaderboardHandler(deps, maxLeaderboardLimit),
		historyHandler:      NewHistoryHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/participants", MetricsMiddleware(s.participantsHandler.HandleParticipants, "participants"))
	mux.HandleFunc("/claim/", MetricsMiddleware(s.claimHandler.HandlePostClaim, "claim"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/history", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
}

// participantResponse mirrors the wire shape of a roster member.
type participantResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TotalPoints int       `json:"total_points"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toParticipantResponse(p model.Participant) participantResponse {
	return participantResponse{
		ID:          p.ID,
		Name:        p.Name,
		TotalPoints: p.TotalPoints,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
	}
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

// writeDomainError maps sentinel errors from the core onto HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "participant_not_found", err)
	case errors.Is(err, repository.ErrDuplicateName):
		writeError(w, http.StatusBadRequest, "duplicate_participant", err)
	case errors.Is(err, service.ErrInvalidName), errors.Is(err, service.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
