// Package storagetest holds the behaviour every storage.Storage implementation must share.
package storagetest

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/dotsgame/internal/model"
	"github.com/mcoot/dotsgame/internal/storage"
)

// Suite runs the storage contract against whatever New returns. Embed it in a backend's
// own suite and set New in SetupTest.
type Suite struct {
	suite.Suite
	New func() storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.New, "storagetest.Suite needs New")
	s.Storage = s.New()
	s.Ctx = context.Background()
}

func (s *Suite) newGame() (*model.Game, *model.Player) {
	p, err := s.Storage.CreatePlayer(s.Ctx, model.ColorRed)
	s.Require().NoError(err)
	g, err := s.Storage.CreateGame(s.Ctx, p.ID)
	s.Require().NoError(err)
	return g, p
}

// Player tests

func (s *Suite) TestCreateAndGetPlayer() {
	p, err := s.Storage.CreatePlayer(s.Ctx, model.ColorBlue)
	s.Require().NoError(err)
	s.Positive(int64(p.ID))

	retrieved, err := s.Storage.GetPlayer(s.Ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.ID, retrieved.ID)
	s.Equal(model.ColorBlue, retrieved.Color)
	s.Equal(0, retrieved.Score)
}

func (s *Suite) TestPlayerIDsAreDistinct() {
	a, err := s.Storage.CreatePlayer(s.Ctx, model.ColorRed)
	s.Require().NoError(err)
	b, err := s.Storage.CreatePlayer(s.Ctx, model.ColorRed)
	s.Require().NoError(err)
	s.NotEqual(a.ID, b.ID)
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, 404)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game tests

func (s *Suite) TestCreateAndGetGame() {
	g, p := s.newGame()
	s.Positive(int64(g.ID))
	s.Equal(p.ID, g.PlayerOne)
	s.False(g.IsFull())
	s.Equal(model.GameStateWaiting, g.State)

	retrieved, err := s.Storage.GetGame(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(g.ID, retrieved.ID)
	s.Equal(p.ID, retrieved.PlayerOne)
	s.Equal(model.GameStateWaiting, retrieved.State)
}

func (s *Suite) TestCreateGameForUnknownPlayer() {
	_, err := s.Storage.CreateGame(s.Ctx, 404)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, 404)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestNewGameHasNoHistory() {
	g, _ := s.newGame()

	moves, err := s.Storage.ListMoves(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Empty(moves)

	boxes, err := s.Storage.ListBoxOwnerships(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Empty(boxes)
}

// Update tests

func (s *Suite) TestUpdateUnknownGame() {
	err := s.Storage.Update(s.Ctx, 404, func(tx storage.GameTx) error {
		s.Fail("callback must not run")
		return nil
	})
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestUpdateCommitsEveryWrite() {
	g, one := s.newGame()

	var two *model.Player
	err := s.Storage.Update(s.Ctx, g.ID, func(tx storage.GameTx) error {
		s.Equal(g.ID, tx.Game().ID)

		p, err := tx.CreatePlayer(model.ColorBlue)
		if err != nil {
			return err
		}
		two = p
		tx.SetPlayerTwo(p.ID)
		tx.SetGameState(model.GameStateInProgress)
		tx.AppendMove(model.Move{
			GameID:     g.ID,
			PlayerID:   one.ID,
			Edge:       model.Edge{Orientation: model.Vertical, Row: 1, Col: 2},
			AwardedBox: true,
			Seq:        0,
		})
		tx.AppendBoxOwnership(model.BoxOwnership{GameID: g.ID, Color: model.ColorRed, Box: model.Box{Row: 1, Col: 1}})
		tx.IncrementScore(one.ID, 1)
		return nil
	})
	s.Require().NoError(err)

	game, err := s.Storage.GetGame(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(two.ID, game.PlayerTwo)
	s.Equal(model.GameStateInProgress, game.State)

	retrieved, err := s.Storage.GetPlayer(s.Ctx, two.ID)
	s.Require().NoError(err)
	s.Equal(model.ColorBlue, retrieved.Color)

	scorer, err := s.Storage.GetPlayer(s.Ctx, one.ID)
	s.Require().NoError(err)
	s.Equal(1, scorer.Score)

	moves, err := s.Storage.ListMoves(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Require().Len(moves, 1)
	s.Equal(model.Edge{Orientation: model.Vertical, Row: 1, Col: 2}, moves[0].Edge)
	s.True(moves[0].AwardedBox)
	s.Equal(one.ID, moves[0].PlayerID)

	boxes, err := s.Storage.ListBoxOwnerships(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Require().Len(boxes, 1)
	s.Equal(model.Box{Row: 1, Col: 1}, boxes[0].Box)
	s.Equal(model.ColorRed, boxes[0].Color)
}

func (s *Suite) TestUpdateWritesNothingOnError() {
	g, one := s.newGame()
	boom := errors.New("boom")

	var created model.PlayerID
	err := s.Storage.Update(s.Ctx, g.ID, func(tx storage.GameTx) error {
		p, err := tx.CreatePlayer(model.ColorBlue)
		if err != nil {
			return err
		}
		created = p.ID
		tx.SetPlayerTwo(p.ID)
		tx.SetGameState(model.GameStateInProgress)
		tx.AppendMove(model.Move{GameID: g.ID, PlayerID: one.ID})
		tx.AppendBoxOwnership(model.BoxOwnership{GameID: g.ID, Color: model.ColorRed})
		tx.IncrementScore(one.ID, 3)
		return boom
	})
	s.ErrorIs(err, boom)

	game, err := s.Storage.GetGame(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.False(game.IsFull())
	s.Equal(model.GameStateWaiting, game.State)

	_, err = s.Storage.GetPlayer(s.Ctx, created)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	p, err := s.Storage.GetPlayer(s.Ctx, one.ID)
	s.Require().NoError(err)
	s.Equal(0, p.Score)

	moves, err := s.Storage.ListMoves(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Empty(moves)
	boxes, err := s.Storage.ListBoxOwnerships(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Empty(boxes)
}

func (s *Suite) TestUpdateRejectsBackwardStateChange() {
	g, _ := s.newGame()

	err := s.Storage.Update(s.Ctx, g.ID, func(tx storage.GameTx) error {
		tx.SetGameState(model.GameStateFinished)
		return nil
	})
	s.Error(err)

	game, err := s.Storage.GetGame(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStateWaiting, game.State)
}

func (s *Suite) TestBufferedWritesAreInvisibleInsideUpdate() {
	g, one := s.newGame()

	err := s.Storage.Update(s.Ctx, g.ID, func(tx storage.GameTx) error {
		tx.AppendMove(model.Move{GameID: g.ID, PlayerID: one.ID})
		moves, err := tx.ListMoves()
		if err != nil {
			return err
		}
		s.Empty(moves)
		return nil
	})
	s.Require().NoError(err)
}

func (s *Suite) TestMovesKeepInsertionOrder() {
	g, one := s.newGame()

	for i := range 5 {
		err := s.Storage.Update(s.Ctx, g.ID, func(tx storage.GameTx) error {
			moves, err := tx.ListMoves()
			if err != nil {
				return err
			}
			s.Len(moves, i)
			tx.AppendMove(model.Move{
				GameID:   g.ID,
				PlayerID: one.ID,
				Edge:     model.Edge{Orientation: model.Horizontal, Row: i, Col: 0},
				Seq:      len(moves),
			})
			return nil
		})
		s.Require().NoError(err)
	}

	moves, err := s.Storage.ListMoves(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Require().Len(moves, 5)
	for i, m := range moves {
		s.Equal(i, m.Seq)
		s.Equal(i, m.Edge.Row)
	}
}

func (s *Suite) TestHistoriesAreIsolatedPerGame() {
	a, one := s.newGame()
	b, _ := s.newGame()

	err := s.Storage.Update(s.Ctx, a.ID, func(tx storage.GameTx) error {
		tx.AppendMove(model.Move{GameID: a.ID, PlayerID: one.ID})
		return nil
	})
	s.Require().NoError(err)

	moves, err := s.Storage.ListMoves(s.Ctx, b.ID)
	s.Require().NoError(err)
	s.Empty(moves)
}

// ConcurrentUpdates checks that no committed append is lost when many writers race. Losers
// may fail with model.ErrStaleTurn and retry.
func (s *Suite) TestConcurrentUpdatesLoseNothing() {
	g, one := s.newGame()

	const writers = 10
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				err := s.Storage.Update(s.Ctx, g.ID, func(tx storage.GameTx) error {
					moves, err := tx.ListMoves()
					if err != nil {
						return err
					}
					tx.AppendMove(model.Move{GameID: g.ID, PlayerID: one.ID, Seq: len(moves)})
					return nil
				})
				if !errors.Is(err, model.ErrStaleTurn) {
					s.NoError(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	moves, err := s.Storage.ListMoves(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Require().Len(moves, writers)
	for i, m := range moves {
		s.Equal(i, m.Seq)
	}
}
