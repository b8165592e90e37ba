// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/Triptiverma003/Ranking-System/internal/adapters/repository"
	"github.com/Triptiverma003/Ranking-System/internal/domain/award"
	"github.com/Triptiverma003/Ranking-System/internal/domain/model"
	"github.com/Triptiverma003/Ranking-System/internal/domain/types"
	"github.com/Triptiverma003/Ranking-System/pkg/logger"
	"github.com/Triptiverma003/Ranking-System/pkg/metrics"
)

// Service implements registration, claims and the read-side projections
// over the roster and ledger stores.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	drawer award.Drawer

	// Configuration
	awardMin            int
	awardMax            int
	maxLeaderboardLimit int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a pre-built store. Without it, Start builds an
// in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDrawer injects an award drawer. Tests use this to fix the award.
func WithDrawer(d award.Drawer) Option {
	return func(s *Service) {
		if d != nil {
			s.drawer = d
		}
	}
}

// WithAwardRange sets the inclusive random award range.
func WithAwardRange(minPoints, maxPoints int) Option {
	return func(s *Service) {
		if minPoints > 0 && maxPoints >= minPoints {
			s.awardMin = minPoints
			s.awardMax = maxPoints
		}
	}
}

// WithMaxLeaderboardLimit caps leaderboard reads.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLeaderboardLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		awardMin:            award.DefaultMin,
		awardMax:            award.DefaultMax,
		maxLeaderboardLimit: 100,
		logger:              nil, // set at Start when not injected
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.drawer == nil {
		s.drawer = award.NewRandomDrawer(award.WithRange(s.awardMin, s.awardMax))
	}

	s.started = true
	s.logger.Info(ctx, "ranking service started",
		logger.Int("awardMin", s.awardMin),
		logger.Int("awardMax", s.awardMax),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.logger.Error(ctx, "store close failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "ranking service stopped")
}

// Register validates and inserts a new participant with a zero total.
func (s *Service) Register(ctx context.Context, name, image string) (model.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Participant{}, ErrInvalidName
	}

	p := model.Participant{
		ID:        uuid.NewString(),
		Name:      name,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateParticipant(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			metrics.RecordDuplicateName()
		}
		return model.Participant{}, err
	}

	metrics.RecordRegistration()
	s.logger.Info(ctx, "participant registered",
		logger.String("id", p.ID),
		logger.String("name", p.Name),
	)
	return p, nil
}

// Roster returns the current roster.
func (s *Service) Roster(ctx context.Context) ([]model.Participant, error) {
	return s.store.Participants(ctx)
}

// Claim draws an award for the participant and atomically applies it:
// the running total and the ledger move together or not at all.
func (s *Service) Claim(ctx context.Context, participantID string) (model.ClaimResult, error) {
	if strings.TrimSpace(participantID) == "" {
		return model.ClaimResult{}, ErrInvalidID
	}

	points, err := s.drawer.Draw(ctx)
	if err != nil {
		metrics.RecordClaimError()
		return model.ClaimResult{}, err
	}

	entry := model.LedgerEntry{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		Points:        points,
		Timestamp:     time.Now().UTC(),
	}
	updated, err := s.store.ApplyClaim(ctx, entry)
	if err != nil {
		metrics.RecordClaimError()
		return model.ClaimResult{}, err
	}

	metrics.RecordClaim()
	metrics.ObservePointsAwarded(points)
	s.logger.Debug(ctx, "claim applied",
		logger.String("participantID", participantID),
		logger.Int("points", points),
		logger.Int("totalPoints", updated.TotalPoints),
	)
	return model.ClaimResult{Participant: updated, PointsAwarded: points}, nil
}

// Leaderboard returns the roster ordered by total points descending with
// dense 1-based ranks. Ties keep roster order, so rank among equals is not
// deterministic across stores. A limit of 0 or less returns the full roster.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]types.RankedEntry, error) {
	roster, err := s.store.Participants(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].TotalPoints > roster[j].TotalPoints
	})

	if limit > 0 && limit < len(roster) {
		roster = roster[:limit]
	}

	out := make([]types.RankedEntry, len(roster))
	for i, p := range roster {
		out[i] = types.RankedEntry{
			Rank:        i + 1,
			ID:          p.ID,
			Name:        p.Name,
			TotalPoints: p.TotalPoints,
			Image:       p.Image,
		}
	}
	return out, nil
}

// History projects the ledger joined with current participant names,
// optionally filtered to a single participant, plus summary aggregates.
func (s *Service) History(ctx context.Context, participantID string, order types.Order) (types.HistoryPage, error) {
	if !order.Valid() {
		order = types.OrderNewest
	}

	if participantID != "" {
		if _, err := s.store.Participant(ctx, participantID); err != nil {
			return types.HistoryPage{}, err
		}
	}

	entries, err := s.store.LedgerEntries(ctx, repository.LedgerFilter{
		ParticipantID: participantID,
		Order:         order,
	})
	if err != nil {
		return types.HistoryPage{}, err
	}

	roster, err := s.store.Participants(ctx)
	if err != nil {
		return types.HistoryPage{}, err
	}
	nameByID := make(map[string]string, len(roster))
	for _, p := range roster {
		nameByID[p.ID] = p.Name
	}

	records := make([]types.HistoryRecord, len(entries))
	sum := 0
	for i, e := range entries {
		records[i] = types.HistoryRecord{
			ID:              e.ID,
			ParticipantID:   e.ParticipantID,
			ParticipantName: nameByID[e.ParticipantID],
			Points:          e.Points,
			Timestamp:       e.Timestamp,
		}
		sum += e.Points
	}

	summary := types.HistorySummary{
		Count:       len(entries),
		TotalPoints: sum,
	}
	if summary.Count > 0 {
		summary.AveragePoints = int(math.Round(float64(sum) / float64(summary.Count)))
	}

	return types.HistoryPage{Records: records, Summary: summary}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":             s.started,
		"awardMin":            s.awardMin,
		"awardMax":            s.awardMax,
		"maxLeaderboardLimit": s.maxLeaderboardLimit,
	}

	if s.started {
		rosterSize := s.store.Count(ctx)
		stats["rosterSize"] = rosterSize
		metrics.UpdateRosterSize(rosterSize)
	}

	return stats
}
