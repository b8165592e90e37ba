// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Triptiverma003/Ranking-System/internal/domain/model"
)

// ClaimDependencies defines the interface for claim operations.
type ClaimDependencies interface {
	Claim(ctx context.Context, participantID string) (model.ClaimResult, error)
}

// ClaimHandler handles claim requests.
type ClaimHandler struct {
	deps ClaimDependencies
}

// NewClaimHandler creates a new claim handler.
func NewClaimHandler(deps ClaimDependencies) *ClaimHandler {
	return &ClaimHandler{deps: deps}
}

// claimResponse mirrors the wire shape of POST /claim/{participant_id}.
type claimResponse struct {
	Message     string              `json:"message"`
	Participant participantResponse `json:"participant"`
	Points      int                 `json:"points"`
}

// HandlePostClaim handles POST /claim/{participant_id} requests.
func (h *ClaimHandler) HandlePostClaim(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	// Extract path parameter after /claim/
	id := strings.TrimPrefix(r.URL.Path, "/claim/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	res, err := h.deps.Claim(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, claimResponse{
		Message:     fmt.Sprintf("%s claimed %d points", res.Participant.Name, res.PointsAwarded),
		Participant: toParticipantResponse(res.Participant),
		Points:      res.PointsAwarded,
	})
}
