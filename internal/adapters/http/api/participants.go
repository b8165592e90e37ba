// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Triptiverma003/Ranking-System/internal/domain/model"
)

// ParticipantDependencies defines the interface for roster operations.
type ParticipantDependencies interface {
	Register(ctx context.Context, name, image string) (model.Participant, error)
	Roster(ctx context.Context) ([]model.Participant, error)
}

// ParticipantsHandler handles registration and roster listing.
type ParticipantsHandler struct {
	deps ParticipantDependencies
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps ParticipantDependencies) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps}
}

// registerRequest mirrors the wire shape of POST /participants.
type registerRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (r registerRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrBadRequest
	}
	return nil
}

// HandleParticipants handles POST /participants and GET /participants.
func (h *ParticipantsHandler) HandleParticipants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRegister(w, r)
	case http.MethodGet:
		h.handleRoster(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ParticipantsHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	p, err := h.deps.Register(r.Context(), req.Name, req.Image)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toParticipantResponse(p))
}

func (h *ParticipantsHandler) handleRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.deps.Roster(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]participantResponse, len(roster))
	for i, p := range roster {
		out[i] = toParticipantResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}
