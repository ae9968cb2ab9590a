package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/covidslayer/covidslayer-go/internal/model"
	"github.com/covidslayer/covidslayer-go/internal/storage/memory"
	"github.com/covidslayer/covidslayer-go/internal/testutil"
)

type StatsSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
	base    time.Time
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsSuite))
}

func (s *StatsSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
	s.base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StatsSuite) TestComputeStatsNoGames() {
	stats, err := s.service.ComputeStats(s.ctx, "player-1")
	s.Require().NoError(err)

	s.Equal(&model.PlayerStats{}, stats)
}

func (s *StatsSuite) TestComputeStatsAggregatesHistory() {
	won := &model.GameRecord{
		ID:      "game-1",
		OwnerID: "player-1",
		Status:  model.StatusPlayerWon,
		Winner:  model.WinnerPlayer,
		Actions: []model.ActionLogEntry{
			{Type: model.ActionAttack, CovidDamage: 10, PlayerDamage: 5},
			{Type: model.ActionHeal, HealAmount: 7, PlayerDamage: 3},
		},
		StartedAt: s.base,
		EndedAt:   s.base.Add(25 * time.Second),
	}
	lost := &model.GameRecord{
		ID:      "game-2",
		OwnerID: "player-1",
		Status:  model.StatusPlayerLost,
		Winner:  model.WinnerCovid,
		Actions: []model.ActionLogEntry{
			{Type: model.ActionAttack, CovidDamage: 5},
		},
		StartedAt: s.base.Add(time.Minute),
		EndedAt:   s.base.Add(time.Minute + 15*time.Second),
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, won))
	s.Require().NoError(s.storage.SaveGame(s.ctx, lost))

	stats, err := s.service.ComputeStats(s.ctx, "player-1")
	s.Require().NoError(err)

	s.Equal(2, stats.TotalGames)
	s.Equal(1, stats.Wins)
	s.Equal(1, stats.Losses)
	s.Equal(0, stats.Draws)
	s.Equal(0, stats.Surrenders)
	s.Equal(15, stats.TotalDamageDealt)
	s.Equal(8, stats.TotalDamageTaken)
	s.Equal(7, stats.TotalHealing)
	s.Equal(20, stats.AverageGameDuration)
	s.Equal(50, stats.WinRate)
}

func (s *StatsSuite) TestComputeStatsIgnoresOtherOwners() {
	other := &model.GameRecord{
		ID:        "game-1",
		OwnerID:   "player-2",
		Status:    model.StatusPlayerWon,
		StartedAt: s.base,
		EndedAt:   s.base.Add(10 * time.Second),
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, other))

	stats, err := s.service.ComputeStats(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(0, stats.TotalGames)
}

// Fold tests

func (s *StatsSuite) TestFoldEmptyIsAllZero() {
	s.Equal(&model.PlayerStats{}, Fold(nil))
}

func (s *StatsSuite) TestFoldInProgressGameCountsOnlyTowardTotal() {
	games := []*model.GameRecord{
		{ID: "game-1", Status: model.StatusInProgress, StartedAt: s.base},
	}

	stats := Fold(games)

	s.Equal(1, stats.TotalGames)
	s.Equal(0, stats.Wins+stats.Losses+stats.Draws)
	s.Equal(0, stats.AverageGameDuration)
	s.Equal(0, stats.WinRate)
}

func (s *StatsSuite) TestFoldSurrenderCountedOncePerGame() {
	games := []*model.GameRecord{
		{
			ID:     "game-1",
			Status: model.StatusPlayerLost,
			Actions: []model.ActionLogEntry{
				{Type: model.ActionAttack, CovidDamage: 3},
				{Type: model.ActionSurrender},
			},
			StartedAt: s.base,
			EndedAt:   s.base.Add(10 * time.Second),
		},
	}

	stats := Fold(games)

	s.Equal(1, stats.Surrenders)
	s.Equal(1, stats.Losses)
}

func (s *StatsSuite) TestFoldAverageDurationSkipsInProgress() {
	games := []*model.GameRecord{
		{ID: "game-1", Status: model.StatusPlayerWon, StartedAt: s.base, EndedAt: s.base.Add(30 * time.Second)},
		{ID: "game-2", Status: model.StatusInProgress, StartedAt: s.base},
	}

	stats := Fold(games)

	// Only the ended game enters the average
	s.Equal(30, stats.AverageGameDuration)
}

func (s *StatsSuite) TestFoldWinRateRounds() {
	games := []*model.GameRecord{
		{ID: "game-1", Status: model.StatusPlayerWon, StartedAt: s.base, EndedAt: s.base.Add(time.Second)},
		{ID: "game-2", Status: model.StatusPlayerLost, StartedAt: s.base, EndedAt: s.base.Add(time.Second)},
		{ID: "game-3", Status: model.StatusPlayerLost, StartedAt: s.base, EndedAt: s.base.Add(time.Second)},
	}

	stats := Fold(games)

	// 1/3 rounds to 33
	s.Equal(33, stats.WinRate)
}

func (s *StatsSuite) TestFoldDraws() {
	games := []*model.GameRecord{
		{ID: "game-1", Status: model.StatusDraw, Winner: model.WinnerDraw, StartedAt: s.base, EndedAt: s.base.Add(time.Second)},
	}

	stats := Fold(games)

	s.Equal(1, stats.Draws)
	s.Equal(0, stats.WinRate)
}
