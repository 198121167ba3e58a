package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mcoot/dotsgame/internal/dependencies/clock"
	"github.com/mcoot/dotsgame/internal/model"
	"github.com/mcoot/dotsgame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	clock clock.Clock

	nextPlayerID model.PlayerID
	nextGameID   model.GameID

	players map[model.PlayerID]*model.Player
	games   map[model.GameID]*model.Game
	moves   map[model.GameID][]model.Move
	boxes   map[model.GameID][]model.BoxOwnership
}

// New creates a new in-memory storage instance
func New() *Storage {
	return NewWithClock(clock.New())
}

// NewWithClock creates an in-memory storage that stamps games with the given clock
func NewWithClock(clk clock.Clock) *Storage {
	return &Storage{
		clock:   clk,
		players: make(map[model.PlayerID]*model.Player),
		games:   make(map[model.GameID]*model.Game),
		moves:   make(map[model.GameID][]model.Move),
		boxes:   make(map[model.GameID][]model.BoxOwnership),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, color model.Color) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player := s.allocPlayer(color)
	s.players[player.ID] = player
	cp := *player
	return &cp, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayer(id)
}

// allocPlayer must be called with the write lock held
func (s *Storage) allocPlayer(color model.Color) *model.Player {
	s.nextPlayerID++
	return &model.Player{ID: s.nextPlayerID, Color: color}
}

func (s *Storage) getPlayer(id model.PlayerID) (*model.Player, error) {
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, playerOne model.PlayerID) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[playerOne]; !ok {
		return nil, model.ErrPlayerNotFound
	}
	s.nextGameID++
	now := s.clock.Now()
	game := &model.Game{
		ID:        s.nextGameID,
		PlayerOne: playerOne,
		State:     model.GameStateWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.games[game.ID] = game
	cp := *game
	return &cp, nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	cp := *game
	return &cp, nil
}

// History operations

func (s *Storage) ListMoves(ctx context.Context, gameID model.GameID) ([]model.Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listMoves(gameID), nil
}

func (s *Storage) ListBoxOwnerships(ctx context.Context, gameID model.GameID) ([]model.BoxOwnership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBoxes(gameID), nil
}

func (s *Storage) listMoves(gameID model.GameID) []model.Move {
	result := make([]model.Move, len(s.moves[gameID]))
	copy(result, s.moves[gameID])
	return result
}

func (s *Storage) listBoxes(gameID model.GameID) []model.BoxOwnership {
	result := make([]model.BoxOwnership, len(s.boxes[gameID]))
	copy(result, s.boxes[gameID])
	return result
}

// Update holds the write lock for the whole transaction, so transactions never conflict
func (s *Storage) Update(ctx context.Context, gameID model.GameID, fn func(tx storage.GameTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return model.ErrGameNotFound
	}
	snapshot := *game

	tx := &gameTx{storage: s, game: &snapshot}
	if err := fn(tx); err != nil {
		return err
	}
	if tx.state != "" && !snapshot.State.CanTransitionTo(tx.state) {
		return fmt.Errorf("game %d: illegal state change %s -> %s", gameID, snapshot.State, tx.state)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit(s.clock.Now())
	return nil
}

// gameTx buffers writes until Update commits them
type gameTx struct {
	storage *Storage
	game    *model.Game

	newPlayers []*model.Player
	playerTwo  model.PlayerID
	state      model.GameState
	moves      []model.Move
	boxes      []model.BoxOwnership
	scores     map[model.PlayerID]int
}

var _ storage.GameTx = (*gameTx)(nil)

func (t *gameTx) Game() *model.Game {
	cp := *t.game
	return &cp
}

func (t *gameTx) GetPlayer(id model.PlayerID) (*model.Player, error) {
	return t.storage.getPlayer(id)
}

func (t *gameTx) ListMoves() ([]model.Move, error) {
	return t.storage.listMoves(t.game.ID), nil
}

func (t *gameTx) ListBoxOwnerships() ([]model.BoxOwnership, error) {
	return t.storage.listBoxes(t.game.ID), nil
}

func (t *gameTx) CreatePlayer(color model.Color) (*model.Player, error) {
	player := t.storage.allocPlayer(color)
	t.newPlayers = append(t.newPlayers, player)
	cp := *player
	return &cp, nil
}

func (t *gameTx) SetPlayerTwo(id model.PlayerID) {
	t.playerTwo = id
}

func (t *gameTx) SetGameState(state model.GameState) {
	t.state = state
}

func (t *gameTx) AppendMove(move model.Move) {
	t.moves = append(t.moves, move)
}

func (t *gameTx) AppendBoxOwnership(box model.BoxOwnership) {
	t.boxes = append(t.boxes, box)
}

func (t *gameTx) IncrementScore(id model.PlayerID, delta int) {
	if t.scores == nil {
		t.scores = make(map[model.PlayerID]int)
	}
	t.scores[id] += delta
}

// commit must be called with the write lock held
func (t *gameTx) commit(now time.Time) {
	s := t.storage
	for _, p := range t.newPlayers {
		s.players[p.ID] = p
	}
	game := s.games[t.game.ID]
	if t.playerTwo != 0 {
		game.PlayerTwo = t.playerTwo
	}
	if t.state != "" {
		game.State = t.state
	}
	game.UpdatedAt = now
	s.moves[game.ID] = append(s.moves[game.ID], t.moves...)
	s.boxes[game.ID] = append(s.boxes[game.ID], t.boxes...)
	for id, delta := range t.scores {
		if p, ok := s.players[id]; ok {
			p.Score += delta
		}
	}
}
