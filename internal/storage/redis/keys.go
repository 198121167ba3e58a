package redis

import (
	"fmt"

	"github.com/mcoot/dotsgame/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "dots"

// playerSeqKey returns the counter used to allocate player IDs
func playerSeqKey() string {
	return fmt.Sprintf("%s:seq:player", keyPrefix)
}

// gameSeqKey returns the counter used to allocate game IDs
func gameSeqKey() string {
	return fmt.Sprintf("%s:seq:game", keyPrefix)
}

// playerKey returns the Redis key for a Player HASH (color, score)
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%d", keyPrefix, id)
}

// movesKey returns the Redis key for the LIST of moves in a game
func movesKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%d:moves", keyPrefix, id)
}

// boxesKey returns the Redis key for the LIST of box ownerships in a game
func boxesKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%d:boxes", keyPrefix, id)
}
