package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Triptiverma003/Ranking-System/internal/domain/model"
	"github.com/Triptiverma003/Ranking-System/internal/domain/types"
	"github.com/Triptiverma003/Ranking-System/pkg/metrics"
)

// MemStore is an in-memory Store implementation.
//
// A single RWMutex guards both collections, so the increment-then-append
// inside ApplyClaim is atomic as observed by readers and claims against the
// same participant serialize. The ledger slice is kept in insertion order,
// which matches timestamp order because appends happen under the write lock.
type MemStore struct {
	mu      sync.RWMutex
	byID    map[string]model.Participant
	order   []string // participant ids in creation order
	entries []model.LedgerEntry
}

// NewMemStore constructs an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		byID: make(map[string]model.Participant),
	}
}

// CreateParticipant implements Store.CreateParticipant.
func (s *MemStore) CreateParticipant(ctx context.Context, p model.Participant) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if strings.EqualFold(existing.Name, p.Name) {
			metrics.RecordErrorByComponent("repository", "duplicate_name")
			return ErrDuplicateName
		}
	}

	s.byID[p.ID] = p
	s.order = append(s.order, p.ID)
	metrics.UpdateRosterSize(len(s.byID))
	return nil
}

// Participant implements Store.Participant.
func (s *MemStore) Participant(ctx context.Context, id string) (model.Participant, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Participant{}, ErrNotFound
	}
	return p, nil
}

// Participants implements Store.Participants.
func (s *MemStore) Participants(ctx context.Context) ([]model.Participant, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Participant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// ApplyClaim implements Store.ApplyClaim. The write lock makes the total
// increment and the ledger append a single atomic step.
func (s *MemStore) ApplyClaim(ctx context.Context, entry model.LedgerEntry) (model.Participant, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	if entry.Points <= 0 {
		metrics.RecordErrorByComponent("repository", "invalid_entry")
		return model.Participant{}, ErrInvalidEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[entry.ParticipantID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Participant{}, ErrNotFound
	}

	p.TotalPoints += entry.Points
	s.byID[entry.ParticipantID] = p
	s.entries = append(s.entries, entry)
	metrics.UpdateLedgerSize(len(s.entries))
	return p, nil
}

// LedgerEntries implements Store.LedgerEntries.
func (s *MemStore) LedgerEntries(ctx context.Context, filter LedgerFilter) ([]model.LedgerEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	out := make([]model.LedgerEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if filter.ParticipantID != "" && e.ParticipantID != filter.ParticipantID {
			continue
		}
		out = append(out, e)
	}
	s.mu.RUnlock()

	if filter.Order == types.OrderOldest {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Timestamp.Before(out[j].Timestamp)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Timestamp.After(out[j].Timestamp)
		})
	}
	return out, nil
}

// Count implements Store.Count.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
