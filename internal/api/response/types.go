package response

import (
	"time"

	"github.com/covidslayer/covidslayer-go/internal/model"
	"github.com/covidslayer/covidslayer-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player.
// The password hash never leaves the server.
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		FullName:  p.FullName,
		Email:     p.Email,
		Avatar:    p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// AuthResponseFromResult creates an AuthResponse from an auth result
func AuthResponseFromResult(r *auth.AuthResult) AuthResponse {
	return AuthResponse{
		Player: PlayerFromModel(&r.Player),
		Token:  r.Token,
	}
}

// ActionLog represents one action log entry
type ActionLog struct {
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	PlayerDamage int       `json:"player_damage"`
	CovidDamage  int       `json:"covid_damage"`
	HealAmount   int       `json:"heal_amount"`
	Description  string    `json:"description,omitempty"`
}

// ActionLogFromModel converts a model.ActionLogEntry
func ActionLogFromModel(a model.ActionLogEntry) ActionLog {
	return ActionLog{
		Type:         string(a.Type),
		Timestamp:    a.Timestamp,
		PlayerDamage: a.PlayerDamage,
		CovidDamage:  a.CovidDamage,
		HealAmount:   a.HealAmount,
		Description:  a.Description,
	}
}

// Game represents a full game record in API responses
type Game struct {
	ID           string      `json:"id"`
	PlayerHealth int         `json:"player_health"`
	CovidHealth  int         `json:"covid_health"`
	Timer        int         `json:"timer"`
	Status       string      `json:"status"`
	Winner       *string     `json:"winner,omitempty"`
	Actions      []ActionLog `json:"actions"`
	StartedAt    time.Time   `json:"started_at"`
	EndedAt      *time.Time  `json:"ended_at,omitempty"`
}

// GameFromModel converts a model.GameRecord
func GameFromModel(g *model.GameRecord) Game {
	actions := make([]ActionLog, len(g.Actions))
	for i, a := range g.Actions {
		actions[i] = ActionLogFromModel(a)
	}

	resp := Game{
		ID:           string(g.ID),
		PlayerHealth: g.PlayerHealth,
		CovidHealth:  g.CovidHealth,
		Timer:        g.Timer,
		Status:       string(g.Status),
		Actions:      actions,
		StartedAt:    g.StartedAt,
	}

	if g.Winner != "" {
		w := string(g.Winner)
		resp.Winner = &w
	}
	if !g.EndedAt.IsZero() {
		t := g.EndedAt
		resp.EndedAt = &t
	}

	return resp
}

// GameSummary is the lightweight history view of a game
type GameSummary struct {
	ID           string     `json:"id"`
	PlayerHealth int        `json:"player_health"`
	CovidHealth  int        `json:"covid_health"`
	Status       string     `json:"status"`
	Winner       *string    `json:"winner,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	Duration     *int       `json:"duration"`
	ActionsCount int        `json:"actions_count"`
}

// GameSummaryFromModel converts a model.GameRecord to its history view
func GameSummaryFromModel(g *model.GameRecord) GameSummary {
	resp := GameSummary{
		ID:           string(g.ID),
		PlayerHealth: g.PlayerHealth,
		CovidHealth:  g.CovidHealth,
		Status:       string(g.Status),
		StartedAt:    g.StartedAt,
		ActionsCount: len(g.Actions),
	}

	if g.Winner != "" {
		w := string(g.Winner)
		resp.Winner = &w
	}
	if !g.EndedAt.IsZero() {
		t := g.EndedAt
		resp.EndedAt = &t
		d := int(g.EndedAt.Sub(g.StartedAt).Seconds())
		resp.Duration = &d
	}

	return resp
}

// ActionResponse is the response after resolving an action
type ActionResponse struct {
	PlayerHealth int       `json:"player_health"`
	CovidHealth  int       `json:"covid_health"`
	Status       string    `json:"status"`
	Winner       *string   `json:"winner,omitempty"`
	LastAction   ActionLog `json:"last_action"`
	GameEnded    bool      `json:"game_ended"`
}

// TimerResponse is the response after ticking the timer
type TimerResponse struct {
	Timer     int     `json:"timer"`
	Status    string  `json:"status"`
	Winner    *string `json:"winner,omitempty"`
	GameEnded bool    `json:"game_ended"`
}

// Stats represents aggregate player statistics
type Stats struct {
	TotalGames          int `json:"total_games"`
	Wins                int `json:"wins"`
	Losses              int `json:"losses"`
	Draws               int `json:"draws"`
	Surrenders          int `json:"surrenders"`
	TotalDamageDealt    int `json:"total_damage_dealt"`
	TotalDamageTaken    int `json:"total_damage_taken"`
	TotalHealing        int `json:"total_healing"`
	AverageGameDuration int `json:"average_game_duration"`
	WinRate             int `json:"win_rate"`
}

// StatsFromModel converts a model.PlayerStats
func StatsFromModel(s *model.PlayerStats) Stats {
	return Stats{
		TotalGames:          s.TotalGames,
		Wins:                s.Wins,
		Losses:              s.Losses,
		Draws:               s.Draws,
		Surrenders:          s.Surrenders,
		TotalDamageDealt:    s.TotalDamageDealt,
		TotalDamageTaken:    s.TotalDamageTaken,
		TotalHealing:        s.TotalHealing,
		AverageGameDuration: s.AverageGameDuration,
		WinRate:             s.WinRate,
	}
}

// ActiveGame wraps the caller's active game, null when none exists
type ActiveGame struct {
	ActiveGame *Game `json:"active_game"`
}

// History is the response for the game history endpoint
type History struct {
	Games []GameSummary `json:"games"`
}

// Logs is the response for the game logs endpoint, newest first
type Logs struct {
	Logs []ActionLog `json:"logs"`
}

// WinnerString converts a model winner to a response pointer
func WinnerString(w model.Winner) *string {
	if w == "" {
		return nil
	}
	s := string(w)
	return &s
}
