package stats

import (
	"context"
	"log/slog"
	"math"

	"github.com/covidslayer/covidslayer-go/internal/model"
	"github.com/covidslayer/covidslayer-go/internal/storage"
)

// Service folds a player's full game history into aggregate statistics
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new stats service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ComputeStats aggregates all of a player's games. Games still in progress
// count toward TotalGames but toward none of the outcome buckets, and only
// ended games enter the average duration.
func (s *Service) ComputeStats(ctx context.Context, ownerID model.PlayerID) (*model.PlayerStats, error) {
	games, err := s.storage.FindGamesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return Fold(games), nil
}

// Fold computes PlayerStats over a set of game records. Record order is
// irrelevant. An empty set yields the all-zero stats object.
func Fold(games []*model.GameRecord) *model.PlayerStats {
	stats := &model.PlayerStats{TotalGames: len(games)}
	if len(games) == 0 {
		return stats
	}

	var totalDuration float64
	var endedGames int

	for _, game := range games {
		switch game.Status {
		case model.StatusPlayerWon:
			stats.Wins++
		case model.StatusPlayerLost:
			stats.Losses++
		case model.StatusDraw:
			stats.Draws++
		}

		surrendered := false
		for _, action := range game.Actions {
			if action.Type == model.ActionSurrender {
				surrendered = true
			}
			stats.TotalDamageDealt += action.CovidDamage
			stats.TotalDamageTaken += action.PlayerDamage
			stats.TotalHealing += action.HealAmount
		}
		if surrendered {
			stats.Surrenders++
		}

		if !game.EndedAt.IsZero() {
			totalDuration += game.EndedAt.Sub(game.StartedAt).Seconds()
			endedGames++
		}
	}

	if endedGames > 0 {
		stats.AverageGameDuration = int(math.Round(totalDuration / float64(endedGames)))
	}
	stats.WinRate = int(math.Round(float64(stats.Wins) / float64(stats.TotalGames) * 100))

	return stats
}
