package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionCorrupt  = errors.New("session data is corrupt")

	// State machine errors
	ErrWrongStage    = errors.New("operation not valid in current stage")
	ErrInvalidPoints = errors.New("points must be a finite number")
	ErrInvalidAvatar = errors.New("avatar must be a palette symbol")
)
