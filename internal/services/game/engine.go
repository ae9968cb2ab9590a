package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/covidslayer/covidslayer-go/internal/dependencies/clock"
	"github.com/covidslayer/covidslayer-go/internal/dependencies/random"
	"github.com/covidslayer/covidslayer-go/internal/model"
	"github.com/covidslayer/covidslayer-go/internal/storage"
)

// Damage and heal roll bounds (inclusive)
const (
	attackMax      = 10
	powerAttackMax = 20
	healMax        = 20
	healCounterMax = 10
)

// Engine resolves player actions against game records: it rolls the random
// outcomes, mutates health and timer state, detects game end, and persists
// each mutation as a single save.
type Engine struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewEngine creates a new game engine
func NewEngine(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Engine {
	return &Engine{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// ActionResult is the projection returned after resolving an action
type ActionResult struct {
	PlayerHealth int
	CovidHealth  int
	Status       model.GameStatus
	Winner       model.Winner
	LastAction   model.ActionLogEntry
	GameEnded    bool
}

// TickResult is the projection returned after a timer tick
type TickResult struct {
	Timer     int
	Status    model.GameStatus
	Winner    model.Winner
	GameEnded bool
}

// CreateGame starts a new game for the owner. A player may only have one
// game in progress at a time; the check here is check-then-create, not an
// atomic reservation, matching the store's single-record guarantees.
func (e *Engine) CreateGame(ctx context.Context, ownerID model.PlayerID, timerSeconds int) (*model.GameRecord, error) {
	active, err := e.GetActiveGame(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, model.ErrActiveGameExists
	}

	now := e.clock.Now()
	game := &model.GameRecord{
		ID:           model.GameID(uuid.NewString()),
		OwnerID:      ownerID,
		PlayerHealth: model.StartingHealth,
		CovidHealth:  model.StartingHealth,
		Timer:        timerSeconds,
		Status:       model.StatusInProgress,
		Actions:      []model.ActionLogEntry{},
		StartedAt:    now,
	}

	if err := e.storage.SaveGame(ctx, game); err != nil {
		e.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	e.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("owner_id", string(ownerID)),
		slog.Int("timer", timerSeconds),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (e *Engine) GetGame(ctx context.Context, gameID model.GameID) (*model.GameRecord, error) {
	return e.storage.GetGame(ctx, gameID)
}

// GetActiveGame returns the owner's in-progress game, or nil if none exists
func (e *Engine) GetActiveGame(ctx context.Context, ownerID model.PlayerID) (*model.GameRecord, error) {
	games, err := e.storage.FindGamesByOwnerAndStatus(ctx, ownerID, model.StatusInProgress)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}
	return games[0], nil
}

// GetHistory returns all of the owner's games, newest first
func (e *Engine) GetHistory(ctx context.Context, ownerID model.PlayerID) ([]*model.GameRecord, error) {
	return e.storage.FindGamesByOwner(ctx, ownerID)
}

// GetLogs returns a game's action log, newest first
func (e *Engine) GetLogs(ctx context.Context, gameID model.GameID) ([]model.ActionLogEntry, error) {
	game, err := e.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	logs := make([]model.ActionLogEntry, len(game.Actions))
	for i, entry := range game.Actions {
		logs[len(game.Actions)-1-i] = entry
	}
	return logs, nil
}

// ResolveAction applies one player action to an in-progress game, rolls its
// random outcome, appends the log entry, and persists the mutated record in
// a single save.
func (e *Engine) ResolveAction(ctx context.Context, gameID model.GameID, action model.ActionType) (*ActionResult, error) {
	if !model.ValidAction(action) {
		return nil, model.ErrInvalidAction
	}

	game, err := e.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.Ended() {
		return nil, model.ErrGameAlreadyEnded
	}

	now := e.clock.Now()
	entry := model.ActionLogEntry{
		Type:      action,
		Timestamp: now,
	}

	switch action {
	case model.ActionAttack:
		playerDeals := e.roll(attackMax)
		covidDeals := e.roll(attackMax)

		game.PlayerHealth = max(model.MinHealth, game.PlayerHealth-covidDeals)
		game.CovidHealth = max(model.MinHealth, game.CovidHealth-playerDeals)

		entry.PlayerDamage = covidDeals
		entry.CovidDamage = playerDeals
		entry.Description = fmt.Sprintf("Player dealt %d damage, Covid dealt %d damage", playerDeals, covidDeals)

	case model.ActionPowerAttack:
		playerDeals := e.roll(powerAttackMax)
		covidDeals := e.roll(powerAttackMax)

		game.PlayerHealth = max(model.MinHealth, game.PlayerHealth-covidDeals)
		game.CovidHealth = max(model.MinHealth, game.CovidHealth-playerDeals)

		entry.PlayerDamage = covidDeals
		entry.CovidDamage = playerDeals
		entry.Description = fmt.Sprintf("Player dealt %d power damage, Covid dealt %d power damage", playerDeals, covidDeals)

	case model.ActionHeal:
		heal := e.roll(healMax)
		covidDeals := e.roll(healCounterMax)

		// Healing and the counter-hit land in the same tick; the log keeps
		// the gross amounts even when clamping absorbs part of them.
		game.PlayerHealth = clampHealth(game.PlayerHealth + heal - covidDeals)

		entry.HealAmount = heal
		entry.PlayerDamage = covidDeals
		entry.Description = fmt.Sprintf("Player healed %d HP but took %d damage", heal, covidDeals)

	case model.ActionSurrender:
		// Fixed outcome regardless of health values; the evaluator is not
		// consulted.
		game.Status = model.StatusPlayerLost
		game.Winner = model.WinnerCovid
		game.EndedAt = now
		entry.Description = "Player surrendered"
	}

	game.Actions = append(game.Actions, entry)

	if action != model.ActionSurrender {
		outcome := EvaluateOutcome(game.PlayerHealth, game.CovidHealth, game.Timer)
		if outcome.Ended() {
			game.Status = outcome.Status
			game.Winner = outcome.Winner
			game.EndedAt = now
		}
	}

	if err := e.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	if game.Ended() {
		e.logger.Info("game ended",
			slog.String("game_id", string(game.ID)),
			slog.String("status", string(game.Status)),
			slog.String("winner", string(game.Winner)),
			slog.String("last_action", string(action)),
		)
	}

	return &ActionResult{
		PlayerHealth: game.PlayerHealth,
		CovidHealth:  game.CovidHealth,
		Status:       game.Status,
		Winner:       game.Winner,
		LastAction:   entry,
		GameEnded:    game.Ended(),
	}, nil
}

// Tick decrements a game's remaining time, clamping at zero, and evaluates
// the end-of-game rules once time is exhausted.
func (e *Engine) Tick(ctx context.Context, gameID model.GameID, decrementBy int) (*TickResult, error) {
	if decrementBy <= 0 {
		return nil, model.ErrInvalidDecrement
	}

	game, err := e.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.Ended() {
		return nil, model.ErrGameAlreadyEnded
	}

	game.Timer = max(0, game.Timer-decrementBy)

	if game.Timer == 0 {
		outcome := EvaluateOutcome(game.PlayerHealth, game.CovidHealth, game.Timer)
		game.Status = outcome.Status
		game.Winner = outcome.Winner
		game.EndedAt = e.clock.Now()

		e.logger.Info("game ended on timer",
			slog.String("game_id", string(game.ID)),
			slog.String("status", string(game.Status)),
			slog.String("winner", string(game.Winner)),
		)
	}

	if err := e.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	return &TickResult{
		Timer:     game.Timer,
		Status:    game.Status,
		Winner:    game.Winner,
		GameEnded: game.Ended(),
	}, nil
}

// ForfeitAll ends every in-progress game the owner has as a loss. Each game
// is persisted independently; a failure partway through leaves earlier
// forfeits in place.
func (e *Engine) ForfeitAll(ctx context.Context, ownerID model.PlayerID) error {
	games, err := e.storage.FindGamesByOwnerAndStatus(ctx, ownerID, model.StatusInProgress)
	if err != nil {
		return err
	}

	now := e.clock.Now()
	for _, game := range games {
		game.Status = model.StatusPlayerLost
		game.Winner = model.WinnerCovid
		game.EndedAt = now
		game.Actions = append(game.Actions, model.ActionLogEntry{
			Type:        model.ActionSurrender,
			Timestamp:   now,
			Description: "Player forfeited the game",
		})

		if err := e.storage.SaveGame(ctx, game); err != nil {
			return err
		}

		e.logger.Info("game forfeited",
			slog.String("game_id", string(game.ID)),
			slog.String("owner_id", string(ownerID)),
		)
	}

	return nil
}

// roll returns a uniform random integer in [0, bound] inclusive
func (e *Engine) roll(bound int) int {
	return e.random.Intn(bound + 1)
}

func clampHealth(v int) int {
	if v < model.MinHealth {
		return model.MinHealth
	}
	if v > model.MaxHealth {
		return model.MaxHealth
	}
	return v
}
