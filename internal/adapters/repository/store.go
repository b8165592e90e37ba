// Package repository defines the roster and ledger store interface and errors.
package repository

import (
	"context"

	"github.com/Triptiverma003/Ranking-System/internal/domain/model"
	"github.com/Triptiverma003/Ranking-System/internal/domain/types"
)

// LedgerFilter restricts a ledger read. The zero value selects every entry
// in newest-first order.
type LedgerFilter struct {
	// ParticipantID, when non-empty, restricts entries to one participant.
	ParticipantID string
	// Order controls timestamp ordering; defaults to types.OrderNewest.
	Order types.Order
}

// Store provides durable access to the roster and the claim ledger.
//
// Implementations must make ApplyClaim atomic: the total increment and the
// ledger append either both happen or neither does, and claims against the
// same participant serialize so the running total always equals the ledger
// sum for that participant.
type Store interface {
	// CreateParticipant persists a new participant.
	// Returns ErrDuplicateName if a participant with the same name exists
	// (compared case-insensitively).
	CreateParticipant(ctx context.Context, p model.Participant) error

	// Participant returns a participant by id.
	// Returns ErrNotFound if the id is unknown.
	Participant(ctx context.Context, id string) (model.Participant, error)

	// Participants returns the full roster in creation order.
	Participants(ctx context.Context) ([]model.Participant, error)

	// ApplyClaim increments the participant's running total by entry.Points
	// and appends entry to the ledger as one transaction.
	// Returns the updated participant, or ErrNotFound for an unknown id.
	ApplyClaim(ctx context.Context, entry model.LedgerEntry) (model.Participant, error)

	// LedgerEntries returns ledger entries matching the filter.
	LedgerEntries(ctx context.Context, filter LedgerFilter) ([]model.LedgerEntry, error)

	// Count returns the number of participants in the roster.
	Count(ctx context.Context) int
}
