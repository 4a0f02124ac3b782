package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound      = errors.New("session not found")
	ErrNotAParticipant      = errors.New("player is not a participant in this session")
	ErrGameOver             = errors.New("session is already complete")
	ErrTransitionInProgress = errors.New("phase transition in progress")
	ErrTurnLimitReached     = errors.New("turn limit reached for this phase")

	// Turn validation errors
	ErrEmptyMessage   = errors.New("message must not be empty")
	ErrMessageTooLong = errors.New("message exceeds character limit")

	// External capability errors
	ErrExternalService = errors.New("external service failure")
)
