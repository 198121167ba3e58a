package model

import "time"

// GameID uniquely identifies a game
type GameID int64

// GameState represents the current phase of a game
type GameState string

const (
	GameStateWaiting    GameState = "WAITING_TO_START" // Only player one has joined
	GameStateInProgress GameState = "IN_PROGRESS"      // Both players present, boxes remain
	GameStateFinished   GameState = "FINISHED"         // Every box is owned
)

// rank orders states so transitions can be checked for monotonicity
func (s GameState) rank() int {
	switch s {
	case GameStateWaiting:
		return 0
	case GameStateInProgress:
		return 1
	case GameStateFinished:
		return 2
	default:
		return -1
	}
}

// CanTransitionTo reports whether moving from s to next keeps the lifecycle monotonic
func (s GameState) CanTransitionTo(next GameState) bool {
	return next.rank() == s.rank()+1
}

// Game is a single dots and boxes match between two players
type Game struct {
	ID        GameID
	PlayerOne PlayerID
	PlayerTwo PlayerID // 0 until someone joins
	State     GameState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFull returns true once the second player has joined
func (g *Game) IsFull() bool {
	return g.PlayerTwo != 0
}

// HasPlayer returns true if the player is one of the game's participants
func (g *Game) HasPlayer(id PlayerID) bool {
	if id == 0 {
		return false
	}
	return g.PlayerOne == id || g.PlayerTwo == id
}

// Players returns the participants in join order
func (g *Game) Players() []PlayerID {
	if g.PlayerTwo == 0 {
		return []PlayerID{g.PlayerOne}
	}
	return []PlayerID{g.PlayerOne, g.PlayerTwo}
}
