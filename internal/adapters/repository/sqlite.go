package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/Triptiverma003/Ranking-System/internal/domain/model"
	"github.com/Triptiverma003/Ranking-System/internal/domain/types"
	"github.com/Triptiverma003/Ranking-System/pkg/metrics"
)

//go:embed schema.sql
var schema string

// SQLiteStore is a Store backed by a SQLite database.
//
// ApplyClaim runs the total increment and the ledger append in one SQL
// transaction, so a partial failure can never leave the running total out
// of sync with the ledger sum.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// churn under concurrent claims.
	db.SetMaxOpenConns(1)

	s, err := NewSQLiteStoreFromDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStoreFromDB wraps an existing database handle and applies the schema.
func NewSQLiteStoreFromDB(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateParticipant implements Store.CreateParticipant.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p model.Participant) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO participants (id, name, total_points, image, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.TotalPoints, p.Image, p.CreatedAt,
	)
	if err != nil {
		// The schema declares name UNIQUE COLLATE NOCASE; the driver has no
		// typed constraint error, so existence decides which kind this is.
		var taken bool
		row := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM participants WHERE name = ? COLLATE NOCASE)`, p.Name)
		if scanErr := row.Scan(&taken); scanErr == nil && taken {
			metrics.RecordErrorByComponent("repository", "duplicate_name")
			return ErrDuplicateName
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

// Participant implements Store.Participant.
func (s *SQLiteStore) Participant(ctx context.Context, id string) (model.Participant, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, total_points, image, created_at FROM participants WHERE id = ?`, id)
	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Participant{}, ErrNotFound
	}
	if err != nil {
		return model.Participant{}, fmt.Errorf("select participant: %w", err)
	}
	return p, nil
}

// Participants implements Store.Participants.
func (s *SQLiteStore) Participants(ctx context.Context) ([]model.Participant, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, total_points, image, created_at FROM participants ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}
	defer rows.Close()

	var out []model.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return out, nil
}

// ApplyClaim implements Store.ApplyClaim.
func (s *SQLiteStore) ApplyClaim(ctx context.Context, entry model.LedgerEntry) (model.Participant, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	if entry.Points <= 0 {
		metrics.RecordErrorByComponent("repository", "invalid_entry")
		return model.Participant{}, ErrInvalidEntry
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Participant{}, fmt.Errorf("begin claim transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE participants SET total_points = total_points + ? WHERE id = ?`,
		entry.Points, entry.ParticipantID,
	)
	if err != nil {
		return model.Participant{}, fmt.Errorf("increment total: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Participant{}, fmt.Errorf("increment total: %w", err)
	}
	if affected == 0 {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Participant{}, ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (id, participant_id, points, created_at) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.ParticipantID, entry.Points, entry.Timestamp,
	); err != nil {
		return model.Participant{}, fmt.Errorf("append ledger entry: %w", err)
	}

	row := tx.QueryRowContext(ctx,
		`SELECT id, name, total_points, image, created_at FROM participants WHERE id = ?`,
		entry.ParticipantID,
	)
	p, err := scanParticipant(row)
	if err != nil {
		return model.Participant{}, fmt.Errorf("reload participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Participant{}, fmt.Errorf("commit claim transaction: %w", err)
	}
	return p, nil
}

// LedgerEntries implements Store.LedgerEntries.
func (s *SQLiteStore) LedgerEntries(ctx context.Context, filter LedgerFilter) ([]model.LedgerEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	direction := "DESC"
	if filter.Order == types.OrderOldest {
		direction = "ASC"
	}

	query := `SELECT id, participant_id, points, created_at FROM ledger_entries`
	args := []any{}
	if filter.ParticipantID != "" {
		query += ` WHERE participant_id = ?`
		args = append(args, filter.ParticipantID)
	}
	query += ` ORDER BY created_at ` + direction + `, id ` + direction

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select ledger entries: %w", err)
	}
	defer rows.Close()

	var out []model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		if err := rows.Scan(&e.ID, &e.ParticipantID, &e.Points, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return out, nil
}

// Count implements Store.Count.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants`)
	if err := row.Scan(&n); err != nil {
		metrics.RecordErrorByComponent("repository", "count_failed")
		return 0
	}
	return n
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row scanner) (model.Participant, error) {
	var p model.Participant
	err := row.Scan(&p.ID, &p.Name, &p.TotalPoints, &p.Image, &p.CreatedAt)
	return p, err
}
