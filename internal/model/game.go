package model

import "time"

// GameID uniquely identifies a game record
type GameID string

// GameStatus represents the lifecycle state of a game.
// A game starts IN_PROGRESS and transitions exactly once to a terminal status.
type GameStatus string

const (
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusPlayerWon  GameStatus = "PLAYER_WON"
	StatusPlayerLost GameStatus = "PLAYER_LOST"
	StatusDraw       GameStatus = "DRAW"
)

// Winner identifies which side a finished game went to.
// WinnerDraw doubles as the "undecided" placeholder while a game is still
// in progress; it is only persisted on a record once the game is terminal.
type Winner string

const (
	WinnerPlayer Winner = "player"
	WinnerCovid  Winner = "covid"
	WinnerDraw   Winner = "draw"
)

// ActionType enumerates the player actions a turn can resolve
type ActionType string

const (
	ActionAttack      ActionType = "ATTACK"
	ActionPowerAttack ActionType = "POWER_ATTACK"
	ActionHeal        ActionType = "HEAL"
	ActionSurrender   ActionType = "SURRENDER"
)

// ValidAction reports whether t is one of the defined action types
func ValidAction(t ActionType) bool {
	switch t {
	case ActionAttack, ActionPowerAttack, ActionHeal, ActionSurrender:
		return true
	}
	return false
}

// Health bounds and starting values
const (
	MinHealth      = 0
	MaxHealth      = 100
	StartingHealth = 100
)

// ActionLogEntry records the outcome of a single turn. Entries are immutable
// once appended. Quantities are gross per-turn amounts as rolled, not the
// clamped health delta; a zero value means the quantity was not part of the
// action (or rolled zero, which the stats fold treats identically).
type ActionLogEntry struct {
	Type         ActionType
	Timestamp    time.Time
	PlayerDamage int // damage inflicted on the player this turn
	CovidDamage  int // damage inflicted on covid this turn
	HealAmount   int // gross healing attempted this turn
	Description  string
}

// GameRecord is the persisted state of one battle instance.
// Once Status leaves StatusInProgress the record is read-only.
type GameRecord struct {
	ID           GameID
	OwnerID      PlayerID
	PlayerHealth int
	CovidHealth  int
	Timer        int // seconds remaining
	Status       GameStatus
	Winner       Winner // empty until the game is terminal
	Actions      []ActionLogEntry
	StartedAt    time.Time
	EndedAt      time.Time // zero until the game is terminal
}

// InProgress reports whether the game can still accept mutations
func (g *GameRecord) InProgress() bool {
	return g.Status == StatusInProgress
}

// Ended reports whether the game has reached a terminal status
func (g *GameRecord) Ended() bool {
	return g.Status != StatusInProgress
}

// Duration returns the elapsed game time, or 0 if the game has not ended
func (g *GameRecord) Duration() time.Duration {
	if g.EndedAt.IsZero() {
		return 0
	}
	return g.EndedAt.Sub(g.StartedAt)
}

// LastAction returns the most recent log entry, or nil if none exist
func (g *GameRecord) LastAction() *ActionLogEntry {
	if len(g.Actions) == 0 {
		return nil
	}
	return &g.Actions[len(g.Actions)-1]
}
