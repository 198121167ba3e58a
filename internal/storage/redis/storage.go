package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/dotsgame/internal/dependencies/clock"
	"github.com/mcoot/dotsgame/internal/model"
	"github.com/mcoot/dotsgame/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
	clock  clock.Clock
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clock.New(),
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clock.New(),
	}
}

// WithClock makes the storage stamp records with c instead of the system clock
func (s *Storage) WithClock(c clock.Clock) *Storage {
	s.clock = c
	return s
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, color model.Color) (*model.Player, error) {
	id, err := s.client.Incr(ctx, playerSeqKey()).Result()
	if err != nil {
		return nil, err
	}
	player := &model.Player{ID: model.PlayerID(id), Color: color}
	if err := s.client.HSet(ctx, playerKey(player.ID), playerFields(player)...).Err(); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return getPlayer(ctx, s.client, id)
}

func playerFields(p *model.Player) []any {
	return []any{"color", string(p.Color), "score", p.Score}
}

func getPlayer(ctx context.Context, c redis.Cmdable, id model.PlayerID) (*model.Player, error) {
	fields, err := c.HGetAll(ctx, playerKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrPlayerNotFound
	}
	score, err := strconv.Atoi(fields["score"])
	if err != nil {
		return nil, fmt.Errorf("corrupt score for player %d: %w", id, err)
	}
	return &model.Player{
		ID:    id,
		Color: model.Color(fields["color"]),
		Score: score,
	}, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, playerOne model.PlayerID) (*model.Game, error) {
	exists, err := s.client.Exists(ctx, playerKey(playerOne)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrPlayerNotFound
	}

	id, err := s.client.Incr(ctx, gameSeqKey()).Result()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	game := &model.Game{
		ID:        model.GameID(id),
		PlayerOne: playerOne,
		State:     model.GameStateWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(game)
	if err != nil {
		return nil, err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	s.expireGame(ctx, pipe, game.ID, []model.PlayerID{playerOne})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return getGame(ctx, s.client, id)
}

func getGame(ctx context.Context, c redis.Cmdable, id model.GameID) (*model.Game, error) {
	data, err := c.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// History operations

func (s *Storage) ListMoves(ctx context.Context, gameID model.GameID) ([]model.Move, error) {
	return listJSON[model.Move](ctx, s.client, movesKey(gameID))
}

func (s *Storage) ListBoxOwnerships(ctx context.Context, gameID model.GameID) ([]model.BoxOwnership, error) {
	return listJSON[model.BoxOwnership](ctx, s.client, boxesKey(gameID))
}

// listJSON reads a whole LIST of JSON values in insertion order
func listJSON[T any](ctx context.Context, c redis.Cmdable, key string) ([]T, error) {
	values, err := c.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, len(values))
	for _, val := range values {
		var item T
		if err := json.Unmarshal([]byte(val), &item); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// Update runs fn under WATCH on the game's keys and commits its writes in one MULTI/EXEC.
// A concurrent commit to the same game aborts this one with model.ErrStaleTurn.
func (s *Storage) Update(ctx context.Context, gameID model.GameID, fn func(tx storage.GameTx) error) error {
	err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
		game, err := getGame(ctx, rtx, gameID)
		if err != nil {
			return err
		}

		tx := &gameTx{ctx: ctx, rtx: rtx, game: game}
		if err := fn(tx); err != nil {
			return err
		}
		if tx.state != "" && !game.State.CanTransitionTo(tx.state) {
			return fmt.Errorf("game %d: illegal state change %s -> %s", gameID, game.State, tx.state)
		}

		_, err = rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return s.queueWrites(ctx, pipe, tx)
		})
		return err
	}, gameKey(gameID), movesKey(gameID), boxesKey(gameID))

	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrStaleTurn
	}
	return err
}

// queueWrites adds every buffered write of tx to the MULTI block
func (s *Storage) queueWrites(ctx context.Context, pipe redis.Pipeliner, tx *gameTx) error {
	game := tx.game
	for _, p := range tx.newPlayers {
		pipe.HSet(ctx, playerKey(p.ID), playerFields(p)...)
	}
	if tx.playerTwo != 0 {
		game.PlayerTwo = tx.playerTwo
	}
	if tx.state != "" {
		game.State = tx.state
	}
	game.UpdatedAt = s.clock.Now()

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)

	for _, m := range tx.moves {
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, movesKey(game.ID), data)
	}
	for _, b := range tx.boxes {
		data, err := json.Marshal(b)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, boxesKey(game.ID), data)
	}
	for id, delta := range tx.scores {
		pipe.HIncrBy(ctx, playerKey(id), "score", int64(delta))
	}

	s.expireGame(ctx, pipe, game.ID, game.Players())
	return nil
}

// expireGame keeps the TTL of every key of a game in sync with its last write
func (s *Storage) expireGame(ctx context.Context, pipe redis.Pipeliner, id model.GameID, players []model.PlayerID) {
	if s.cfg.GameTTL <= 0 {
		return
	}
	pipe.Expire(ctx, movesKey(id), s.cfg.GameTTL)
	pipe.Expire(ctx, boxesKey(id), s.cfg.GameTTL)
	for _, p := range players {
		pipe.Expire(ctx, playerKey(p), s.cfg.GameTTL)
	}
}

// gameTx reads through the watching connection and buffers writes for queueWrites
type gameTx struct {
	ctx  context.Context
	rtx  *redis.Tx
	game *model.Game

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
	return getPlayer(t.ctx, t.rtx, id)
}

func (t *gameTx) ListMoves() ([]model.Move, error) {
	return listJSON[model.Move](t.ctx, t.rtx, movesKey(t.game.ID))
}

func (t *gameTx) ListBoxOwnerships() ([]model.BoxOwnership, error) {
	return listJSON[model.BoxOwnership](t.ctx, t.rtx, boxesKey(t.game.ID))
}

// CreatePlayer allocates the ID immediately; the player hash is written on commit
func (t *gameTx) CreatePlayer(color model.Color) (*model.Player, error) {
	id, err := t.rtx.Incr(t.ctx, playerSeqKey()).Result()
	if err != nil {
		return nil, err
	}
	player := &model.Player{ID: model.PlayerID(id), Color: color}
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
