// Package model contains domain models passed between layers.
package model

import "time"

// Participant is a roster member competing on the leaderboard.
type Participant struct {
	ID          string    // unique id, assigned at registration
	Name        string    // display name, unique across the roster
	TotalPoints int       // running total, only the claim path adds to it
	Image       string    // optional display attribute, no ranking effect
	CreatedAt   time.Time // registration time
}

// LedgerEntry records a single claim. Entries are append-only: once
// written they are never updated or deleted.
type LedgerEntry struct {
	ID            string
	ParticipantID string
	Points        int // amount awarded by one claim, always positive
	Timestamp     time.Time
}

// ClaimResult is what a successful claim returns to the caller.
type ClaimResult struct {
	Participant   Participant
	PointsAwarded int
}
