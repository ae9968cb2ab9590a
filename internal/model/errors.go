package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound     = errors.New("game not found")
	ErrGameAlreadyEnded = errors.New("game has already ended")
	ErrInvalidAction    = errors.New("invalid action type")
	ErrAccessDenied     = errors.New("game belongs to another player")
	ErrActiveGameExists = errors.New("player already has an active game")
	ErrInvalidTimer     = errors.New("invalid timer value")
	ErrInvalidDecrement = errors.New("timer decrement must be positive")
)
