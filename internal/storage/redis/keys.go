package redis

import (
	"fmt"

	"github.com/covidslayer/covidslayer-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "covidslayer"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> player_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// gameKey returns the Redis key for a GameRecord
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesForOwnerIndexKey returns the Redis key for the SET of a player's games
func gamesForOwnerIndexKey(ownerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:games_for_owner:%s", keyPrefix, ownerID)
}
