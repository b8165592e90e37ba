package service

import "errors"

// Sentinel kinds for validation failures caught before any store access.
var (
	ErrInvalidName = errors.New("participant name must not be empty")
	ErrInvalidID   = errors.New("participant id must not be empty")
)
