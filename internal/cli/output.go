package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case ActiveGame:
		o.printActiveGame(v)
	case ActionResult:
		o.printActionResult(v)
	case TimerResult:
		o.printTimerResult(v)
	case History:
		o.printHistory(v)
	case Logs:
		o.printLogs(v)
	case Stats:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// ActionLog response type
type ActionLog struct {
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	PlayerDamage int       `json:"player_damage"`
	CovidDamage  int       `json:"covid_damage"`
	HealAmount   int       `json:"heal_amount"`
	Description  string    `json:"description,omitempty"`
}

// Game response type
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

// ActiveGame response type
type ActiveGame struct {
	ActiveGame *Game `json:"active_game"`
}

// GameSummary response type
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

// History response type
type History struct {
	Games []GameSummary `json:"games"`
}

// Logs response type
type Logs struct {
	Logs []ActionLog `json:"logs"`
}

// ActionResult response type
type ActionResult struct {
	PlayerHealth int       `json:"player_health"`
	CovidHealth  int       `json:"covid_health"`
	Status       string    `json:"status"`
	Winner       *string   `json:"winner,omitempty"`
	LastAction   ActionLog `json:"last_action"`
	GameEnded    bool      `json:"game_ended"`
}

// TimerResult response type
type TimerResult struct {
	Timer     int     `json:"timer"`
	Status    string  `json:"status"`
	Winner    *string `json:"winner,omitempty"`
	GameEnded bool    `json:"game_ended"`
}

// Stats response type
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

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.FullName, p.ID)
	fmt.Printf("Email: %s\n", p.Email)
	if p.Avatar != "" {
		fmt.Printf("Avatar: %s\n", p.Avatar)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Player Health: %d\n", g.PlayerHealth)
	fmt.Printf("Covid Health: %d\n", g.CovidHealth)
	fmt.Printf("Timer: %ds\n", g.Timer)
	if g.Winner != nil {
		fmt.Printf("Winner: %s\n", *g.Winner)
	}
	if len(g.Actions) > 0 {
		fmt.Printf("Actions (%d):\n", len(g.Actions))
		for _, a := range g.Actions {
			o.printActionLine(a)
		}
	}
}

func (o *Output) printActiveGame(a ActiveGame) {
	if a.ActiveGame == nil {
		fmt.Println("No active game")
		return
	}
	o.printGame(*a.ActiveGame)
}

func (o *Output) printActionLine(a ActionLog) {
	if a.Description != "" {
		fmt.Printf("  [%s] %s: %s\n", a.Timestamp.Format(time.TimeOnly), a.Type, a.Description)
		return
	}
	fmt.Printf("  [%s] %s\n", a.Timestamp.Format(time.TimeOnly), a.Type)
}

func (o *Output) printActionResult(r ActionResult) {
	if r.LastAction.Description != "" {
		fmt.Println(r.LastAction.Description)
	}
	fmt.Printf("Player Health: %d\n", r.PlayerHealth)
	fmt.Printf("Covid Health: %d\n", r.CovidHealth)
	if r.GameEnded {
		fmt.Printf("Game over: %s", r.Status)
		if r.Winner != nil {
			fmt.Printf(" (winner: %s)", *r.Winner)
		}
		fmt.Println()
	}
}

func (o *Output) printTimerResult(r TimerResult) {
	fmt.Printf("Timer: %ds\n", r.Timer)
	if r.GameEnded {
		fmt.Printf("Game over: %s", r.Status)
		if r.Winner != nil {
			fmt.Printf(" (winner: %s)", *r.Winner)
		}
		fmt.Println()
	}
}

func (o *Output) printHistory(h History) {
	if len(h.Games) == 0 {
		fmt.Println("No games played yet")
		return
	}

	fmt.Printf("Games (%d):\n", len(h.Games))
	for _, g := range h.Games {
		line := fmt.Sprintf("  %s - %s", g.ID, g.Status)
		if g.Winner != nil {
			line += fmt.Sprintf(" (winner: %s)", *g.Winner)
		}
		if g.Duration != nil {
			line += fmt.Sprintf(" - %ds", *g.Duration)
		}
		fmt.Println(line)
	}
}

func (o *Output) printLogs(l Logs) {
	if len(l.Logs) == 0 {
		fmt.Println("No actions logged")
		return
	}

	for _, a := range l.Logs {
		o.printActionLine(a)
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Total Games: %d\n", s.TotalGames)
	fmt.Printf("Wins: %d\n", s.Wins)
	fmt.Printf("Losses: %d\n", s.Losses)
	fmt.Printf("Draws: %d\n", s.Draws)
	fmt.Printf("Surrenders: %d\n", s.Surrenders)
	fmt.Printf("Damage Dealt: %d\n", s.TotalDamageDealt)
	fmt.Printf("Damage Taken: %d\n", s.TotalDamageTaken)
	fmt.Printf("Healing: %d\n", s.TotalHealing)
	fmt.Printf("Average Game Duration: %ds\n", s.AverageGameDuration)
	fmt.Printf("Win Rate: %d%%\n", s.WinRate)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
