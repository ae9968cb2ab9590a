package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a registered account. The email is unique (stored
// lowercased) and the password is only ever held as a bcrypt hash.
type Player struct {
	ID           PlayerID
	FullName     string
	Email        string
	PasswordHash string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
