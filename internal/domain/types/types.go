// Package types contains common read-side types used across the application
package types

import "time"

// RankedEntry represents one leaderboard row.
type RankedEntry struct {
	Rank        int    `json:"rank"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"total_points"`
	Image       string `json:"image,omitempty"`
}

// HistoryRecord is a ledger entry joined with the participant's current name.
// The join is by id, so renaming a participant changes how old entries display.
type HistoryRecord struct {
	ID              string    `json:"id"`
	ParticipantID   string    `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	Points          int       `json:"points"`
	Timestamp       time.Time `json:"timestamp"`
}

// HistorySummary aggregates the filtered ledger projection.
// AveragePoints is rounded to the nearest integer and is 0 for an empty set.
type HistorySummary struct {
	Count         int `json:"count"`
	TotalPoints   int `json:"total_points"`
	AveragePoints int `json:"average_points"`
}

// HistoryPage bundles the projected records with their summary.
type HistoryPage struct {
	Records []HistoryRecord `json:"records"`
	Summary HistorySummary  `json:"summary"`
}

// Order controls ledger projection ordering.
type Order string

const (
	// OrderNewest sorts entries by timestamp descending. Default.
	OrderNewest Order = "newest"
	// OrderOldest sorts entries by timestamp ascending.
	OrderOldest Order = "oldest"
)

// Valid reports whether o is a known ordering.
func (o Order) Valid() bool {
	return o == OrderNewest || o == OrderOldest
}
