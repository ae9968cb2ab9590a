package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/covidslayer/covidslayer-go/internal/model"
	"github.com/covidslayer/covidslayer-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players    map[model.PlayerID]*model.Player
	emailIndex map[string]model.PlayerID
	games      map[model.GameID]*model.GameRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:    make(map[model.PlayerID]*model.Player),
		emailIndex: make(map[string]model.PlayerID),
		games:      make(map[model.GameID]*model.GameRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	s.emailIndex[player.Email] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByEmail(ctx context.Context, email string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Store a copy so callers cannot mutate persisted state in place
	stored := *game
	stored.Actions = make([]model.ActionLogEntry, len(game.Actions))
	copy(stored.Actions, game.Actions)
	s.games[game.ID] = &stored
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	out := *game
	out.Actions = make([]model.ActionLogEntry, len(game.Actions))
	copy(out.Actions, game.Actions)
	return &out, nil
}

func (s *Storage) FindGamesByOwner(ctx context.Context, ownerID model.PlayerID) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.GameRecord
	for _, game := range s.games {
		if game.OwnerID == ownerID {
			out := *game
			out.Actions = make([]model.ActionLogEntry, len(game.Actions))
			copy(out.Actions, game.Actions)
			games = append(games, &out)
		}
	}
	sortNewestFirst(games)
	return games, nil
}

func (s *Storage) FindGamesByOwnerAndStatus(ctx context.Context, ownerID model.PlayerID, status model.GameStatus) ([]*model.GameRecord, error) {
	games, err := s.FindGamesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	filtered := games[:0]
	for _, game := range games {
		if game.Status == status {
			filtered = append(filtered, game)
		}
	}
	return filtered, nil
}

func sortNewestFirst(games []*model.GameRecord) {
	sort.Slice(games, func(i, j int) bool {
		return games[i].StartedAt.After(games[j].StartedAt)
	})
}
