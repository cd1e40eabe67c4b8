package redis

import (
	"fmt"

	"github.com/pugroyal/pugroyal-go/internal/model"
)

// Key prefix for all match-related data
const keyPrefix = "pugroyal"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// boardKey returns the Redis key for a Board
func boardKey(matchID model.MatchID, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:board:%s:%s", keyPrefix, matchID, playerID)
}

// boardsForMatchIndexKey returns the Redis key for the SET of boards in a match
func boardsForMatchIndexKey(matchID model.MatchID) string {
	return fmt.Sprintf("%s:idx:boards_for_match:%s", keyPrefix, matchID)
}
