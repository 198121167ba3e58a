package board

import (
	"context"
	"log/slog"

	"github.com/mcoot/dotsgame/internal/model"
	"github.com/mcoot/dotsgame/internal/storage"
)

// Service derives boards from a game's recorded history
type Service struct {
	storage storage.Storage
	cache   *Cache
	logger  *slog.Logger
}

// New creates a new BoardService. A nil cache disables caching.
func New(storage storage.Storage, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		cache:   cache,
		logger:  logger,
	}
}

// Build replays moves and box ownerships onto an empty board. Ownerships closed by a move
// not in moves are ignored, so histories read outside a transaction still agree.
func Build(size int, moves []model.Move, boxes []model.BoxOwnership) *model.Board {
	b := model.NewBoard(size)
	for _, m := range moves {
		b.SetEdge(m.Edge)
	}
	for _, o := range boxes {
		if o.MoveSeq >= len(moves) {
			continue
		}
		b.SetOwner(o.Box, o.Color)
	}
	return b
}

// GetBoard returns the current board of a game. Callers must not modify the result.
func (s *Service) GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error) {
	if _, err := s.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}

	moves, err := s.storage.ListMoves(ctx, gameID)
	if err != nil {
		return nil, err
	}

	// Ownerships are only ever written alongside a move, so the move count versions both
	ver := len(moves)
	if b, ok := s.cache.Get(gameID, ver); ok {
		return b, nil
	}

	boxes, err := s.storage.ListBoxOwnerships(ctx, gameID)
	if err != nil {
		return nil, err
	}

	b := Build(model.GridSize, moves, boxes)
	s.cache.Put(gameID, ver, b)
	return b, nil
}

// FromTx builds the board visible inside a storage transaction
func FromTx(tx storage.GameTx) (*model.Board, []model.Move, error) {
	moves, err := tx.ListMoves()
	if err != nil {
		return nil, nil, err
	}
	boxes, err := tx.ListBoxOwnerships()
	if err != nil {
		return nil, nil, err
	}
	return Build(model.GridSize, moves, boxes), moves, nil
}

// Invalidate drops any cached board for the game
func (s *Service) Invalidate(gameID model.GameID) {
	s.cache.Delete(gameID)
}

// Interface for dependency injection
type ServiceInterface interface {
	GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error)
	Invalidate(gameID model.GameID)
}

var _ ServiceInterface = (*Service)(nil)
