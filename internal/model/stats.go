package model

// PlayerStats is the aggregate view of a player's full game history.
// It is always recomputed on demand and never persisted.
type PlayerStats struct {
	TotalGames          int
	Wins                int
	Losses              int
	Draws               int
	Surrenders          int
	TotalDamageDealt    int
	TotalDamageTaken    int
	TotalHealing        int
	AverageGameDuration int // seconds, mean over ended games only
	WinRate             int // rounded percentage of all games won
}
