package storage

import (
	"context"

	"github.com/mcoot/dotsgame/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	CreatePlayer(ctx context.Context, color model.Color) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Game operations
	CreateGame(ctx context.Context, playerOne model.PlayerID) (*model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)

	// History operations, both ordered by insertion
	ListMoves(ctx context.Context, gameID model.GameID) ([]model.Move, error)
	ListBoxOwnerships(ctx context.Context, gameID model.GameID) ([]model.BoxOwnership, error)

	// Update runs fn against a consistent view of one game. Writes made through the
	// transaction are applied together only if fn returns nil; otherwise nothing is written.
	// Returns model.ErrGameNotFound if the game does not exist and model.ErrStaleTurn if the
	// game changed underneath the transaction.
	Update(ctx context.Context, gameID model.GameID, fn func(tx GameTx) error) error
}

// GameTx is the read-modify-write view of a single game inside Storage.Update
type GameTx interface {
	// Reads reflect the committed state when the transaction started plus nothing else:
	// buffered writes are not visible to reads.
	Game() *model.Game
	GetPlayer(id model.PlayerID) (*model.Player, error)
	ListMoves() ([]model.Move, error)
	ListBoxOwnerships() ([]model.BoxOwnership, error)

	// Writes are buffered until commit
	CreatePlayer(color model.Color) (*model.Player, error)
	SetPlayerTwo(id model.PlayerID)
	SetGameState(state model.GameState)
	AppendMove(move model.Move)
	AppendBoxOwnership(box model.BoxOwnership)
	IncrementScore(id model.PlayerID, delta int)
}
