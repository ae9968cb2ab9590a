package storage

import (
	"context"

	"github.com/covidslayer/covidslayer-go/internal/model"
)

// Storage defines the interface for data persistence.
// SaveGame must be atomic per record: a reader never observes a
// partially-written game.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByEmail(ctx context.Context, email string) (*model.Player, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.GameRecord) error
	GetGame(ctx context.Context, id model.GameID) (*model.GameRecord, error)

	// FindGamesByOwner returns all of a player's games, newest first
	FindGamesByOwner(ctx context.Context, ownerID model.PlayerID) ([]*model.GameRecord, error)

	// FindGamesByOwnerAndStatus returns a player's games with the given
	// status, newest first
	FindGamesByOwnerAndStatus(ctx context.Context, ownerID model.PlayerID, status model.GameStatus) ([]*model.GameRecord, error)
}
