// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/Triptiverma003/Ranking-System/internal/domain/types"
)

// HistoryDependencies defines the interface for ledger projections.
type HistoryDependencies interface {
	History(ctx context.Context, participantID string, order types.Order) (types.HistoryPage, error)
}

// HistoryHandler handles ledger history requests.
type HistoryHandler struct {
	deps HistoryDependencies
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies) *HistoryHandler {
	return &HistoryHandler{deps: deps}
}

// HandleGetHistory handles GET /history?participant_id=X&order=newest|oldest.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	order := types.OrderNewest
	if orderStr := r.URL.Query().Get("order"); orderStr != "" {
		order = types.Order(orderStr)
		if !order.Valid() {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
	}

	page, err := h.deps.History(r.Context(), r.URL.Query().Get("participant_id"), order)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
