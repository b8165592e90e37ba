package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("participant not found")
	ErrDuplicateName = errors.New("participant name already taken")
	ErrInvalidEntry  = errors.New("invalid ledger entry")
)
