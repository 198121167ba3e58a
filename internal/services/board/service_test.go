package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/dotsgame/internal/model"
	"github.com/mcoot/dotsgame/internal/storage"
	"github.com/mcoot/dotsgame/internal/storage/memory"
	"github.com/mcoot/dotsgame/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	cache   *Cache
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.cache = NewCache()
	s.service = New(s.storage, s.cache, testutil.NopLogger())
	s.ctx = context.Background()
}

func h(row, col int) model.Edge {
	return model.Edge{Orientation: model.Horizontal, Row: row, Col: col}
}

func v(row, col int) model.Edge {
	return model.Edge{Orientation: model.Vertical, Row: row, Col: col}
}

// boardWith returns an empty board with the given edges drawn
func boardWith(edges ...model.Edge) *model.Board {
	b := model.NewBoard(model.GridSize)
	for _, e := range edges {
		b.SetEdge(e)
	}
	return b
}

func (s *ServiceSuite) createGame() model.GameID {
	p, err := s.storage.CreatePlayer(s.ctx, model.ColorRed)
	s.Require().NoError(err)
	g, err := s.storage.CreateGame(s.ctx, p.ID)
	s.Require().NoError(err)
	return g.ID
}

// appendMove writes a move directly, bypassing the rules
func (s *ServiceSuite) appendMove(gameID model.GameID, e model.Edge, owned ...model.Box) {
	err := s.storage.Update(s.ctx, gameID, func(tx storage.GameTx) error {
		moves, err := tx.ListMoves()
		if err != nil {
			return err
		}
		seq := len(moves)
		tx.AppendMove(model.Move{GameID: gameID, Edge: e, AwardedBox: len(owned) > 0, Seq: seq})
		for _, box := range owned {
			tx.AppendBoxOwnership(model.BoxOwnership{GameID: gameID, Color: model.ColorRed, Box: box, MoveSeq: seq})
		}
		return nil
	})
	s.Require().NoError(err)
}

// Build tests

func (s *ServiceSuite) TestBuildEmptyHistory() {
	b := Build(model.GridSize, nil, nil)

	s.Equal(model.GridSize, b.Size)
	s.Len(b.Horizontal, model.GridSize+1)
	s.Len(b.Vertical, model.GridSize)
	s.Equal(0, b.FilledEdgeCount())
	s.Equal(0, b.OwnedCount())
	s.False(b.IsComplete())
}

func (s *ServiceSuite) TestBuildAppliesMovesAndOwners() {
	moves := []model.Move{
		{Edge: h(0, 0), Seq: 0},
		{Edge: v(0, 0), Seq: 1},
	}
	boxes := []model.BoxOwnership{
		{Color: model.ColorBlue, Box: model.Box{Row: 1, Col: 2}, MoveSeq: 1},
	}

	b := Build(model.GridSize, moves, boxes)

	s.True(b.HasEdge(h(0, 0)))
	s.True(b.HasEdge(v(0, 0)))
	s.False(b.HasEdge(h(1, 0)))
	s.Equal(model.ColorBlue, b.Owner(model.Box{Row: 1, Col: 2}))
}

func (s *ServiceSuite) TestBuildIgnoresOwnersOfUnseenMoves() {
	moves := []model.Move{{Edge: h(0, 0), Seq: 0}}
	boxes := []model.BoxOwnership{
		{Color: model.ColorRed, Box: model.Box{Row: 0, Col: 0}, MoveSeq: 1},
	}

	b := Build(model.GridSize, moves, boxes)
	s.Equal(0, b.OwnedCount())
}

// GetBoard tests

func (s *ServiceSuite) TestGetBoardNotFound() {
	_, err := s.service.GetBoard(s.ctx, 99)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ServiceSuite) TestGetBoardReplaysHistory() {
	gameID := s.createGame()
	s.appendMove(gameID, h(0, 0))
	s.appendMove(gameID, h(1, 0))
	s.appendMove(gameID, v(0, 0))
	s.appendMove(gameID, v(0, 1), model.Box{Row: 0, Col: 0})

	b, err := s.service.GetBoard(s.ctx, gameID)
	s.Require().NoError(err)
	s.Equal(4, b.FilledEdgeCount())
	s.Equal(model.ColorRed, b.Owner(model.Box{Row: 0, Col: 0}))
}

func (s *ServiceSuite) TestGetBoardIsCachedPerVersion() {
	gameID := s.createGame()
	s.appendMove(gameID, h(0, 0))

	first, err := s.service.GetBoard(s.ctx, gameID)
	s.Require().NoError(err)
	second, err := s.service.GetBoard(s.ctx, gameID)
	s.Require().NoError(err)
	s.Same(first, second)
	s.Equal(1, s.cache.Len())

	s.appendMove(gameID, h(0, 1))

	third, err := s.service.GetBoard(s.ctx, gameID)
	s.Require().NoError(err)
	s.NotSame(first, third)
	s.Equal(2, third.FilledEdgeCount())
}

func (s *ServiceSuite) TestInvalidateDropsEntry() {
	gameID := s.createGame()
	_, err := s.service.GetBoard(s.ctx, gameID)
	s.Require().NoError(err)
	s.Equal(1, s.cache.Len())

	s.service.Invalidate(gameID)
	s.Equal(0, s.cache.Len())
}

func (s *ServiceSuite) TestGetBoardWithoutCache() {
	service := New(s.storage, nil, testutil.NopLogger())
	gameID := s.createGame()
	s.appendMove(gameID, v(2, 3))

	b, err := service.GetBoard(s.ctx, gameID)
	s.Require().NoError(err)
	s.True(b.HasEdge(v(2, 3)))
	service.Invalidate(gameID)
}

func (s *ServiceSuite) TestFromTx() {
	gameID := s.createGame()
	s.appendMove(gameID, h(4, 3))

	err := s.storage.Update(s.ctx, gameID, func(tx storage.GameTx) error {
		b, moves, err := FromTx(tx)
		s.Require().NoError(err)
		s.Len(moves, 1)
		s.True(b.HasEdge(h(4, 3)))
		return nil
	})
	s.Require().NoError(err)
}

// Validate tests

func (s *ServiceSuite) TestValidateAcceptsEveryEdgeOfAnEmptyBoard() {
	b := boardWith()
	count := 0
	for row := 0; row <= model.GridSize; row++ {
		for col := 0; col <= model.GridSize; col++ {
			if row <= model.GridSize && col < model.GridSize {
				s.NoError(Validate(b, h(row, col)))
				count++
			}
			if row < model.GridSize {
				s.NoError(Validate(b, v(row, col)))
				count++
			}
		}
	}
	s.Equal(40, count)
}

func (s *ServiceSuite) TestValidateOutOfBounds() {
	b := boardWith()
	for _, e := range []model.Edge{
		h(-1, 0), h(5, 0), h(0, -1), h(0, 4),
		v(-1, 0), v(4, 0), v(0, -1), v(0, 5),
		{Orientation: "DIAGONAL", Row: 0, Col: 0},
	} {
		s.ErrorIs(Validate(b, e), model.ErrOutOfBounds, "%+v", e)
	}
}

func (s *ServiceSuite) TestValidateOccupied() {
	b := boardWith(h(2, 2))
	s.ErrorIs(Validate(b, h(2, 2)), model.ErrEdgeOccupied)
	s.NoError(Validate(b, v(2, 2)))
}

// CompletedBoxes tests

func (s *ServiceSuite) TestCompletedBoxesNoneOnEmptyBoard() {
	s.Empty(CompletedBoxes(boardWith(), h(1, 1)))
}

func (s *ServiceSuite) TestCompletedBoxesBoxBelowTopEdge() {
	b := boardWith(h(1, 0), v(0, 0), v(0, 1))
	s.Equal([]model.Box{{Row: 0, Col: 0}}, CompletedBoxes(b, h(0, 0)))
}

func (s *ServiceSuite) TestCompletedBoxesBoxAboveBottomEdge() {
	b := boardWith(h(3, 3), v(3, 3), v(3, 4))
	s.Equal([]model.Box{{Row: 3, Col: 3}}, CompletedBoxes(b, h(4, 3)))
}

func (s *ServiceSuite) TestCompletedBoxesVerticalEdges() {
	left := boardWith(h(2, 1), h(3, 1), v(2, 2))
	s.Equal([]model.Box{{Row: 2, Col: 1}}, CompletedBoxes(left, v(2, 1)))

	right := boardWith(h(2, 3), h(3, 3), v(2, 3))
	s.Equal([]model.Box{{Row: 2, Col: 3}}, CompletedBoxes(right, v(2, 4)))
}

func (s *ServiceSuite) TestCompletedBoxesInteriorEdgeClosesTwo() {
	b := boardWith(
		h(1, 1), h(2, 1), v(1, 1),
		h(1, 2), h(2, 2), v(1, 3),
	)
	s.ElementsMatch(
		[]model.Box{{Row: 1, Col: 1}, {Row: 1, Col: 2}},
		CompletedBoxes(b, v(1, 2)),
	)
}

func (s *ServiceSuite) TestCompletedBoxesNeedsAllThreeOtherEdges() {
	b := boardWith(h(0, 0), v(0, 0))
	s.Empty(CompletedBoxes(b, v(0, 1)))
}

func (s *ServiceSuite) TestCompletedBoxesIgnoresInvalidEdges() {
	b := boardWith(h(1, 0), v(0, 0), v(0, 1), h(0, 0))
	s.Empty(CompletedBoxes(b, h(0, 0)))
	s.Empty(CompletedBoxes(b, h(9, 9)))
}

// Cache tests

func (s *ServiceSuite) TestNilCacheIsSafe() {
	var c *Cache
	_, ok := c.Get(1, 0)
	s.False(ok)
	c.Put(1, 0, boardWith())
	c.Delete(1)
	s.Equal(0, c.Len())
}

func (s *ServiceSuite) TestCacheMissesOnVersionChange() {
	b := boardWith()
	s.cache.Put(1, 3, b)

	got, ok := s.cache.Get(1, 3)
	s.True(ok)
	s.Same(b, got)

	_, ok = s.cache.Get(1, 4)
	s.False(ok)
	_, ok = s.cache.Get(2, 3)
	s.False(ok)
}
