package game

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/dotsgame/internal/dependencies/clock"
	"github.com/mcoot/dotsgame/internal/model"
	"github.com/mcoot/dotsgame/internal/services/board"
	"github.com/mcoot/dotsgame/internal/services/turn"
	"github.com/mcoot/dotsgame/internal/storage"
)

const (
	// TurnFinished is reported as the next turn once every box is owned
	TurnFinished = "FINISHED"
	// WinnerTie is reported as the winner of a finished game with equal scores
	WinnerTie = "TIE"
)

// MoveResult describes an accepted move
type MoveResult struct {
	Move      model.Move
	Completed []model.Box
	WhoseTurn string
	State     model.GameState
}

// Status is the scoreboard view of a game
type Status struct {
	GameID    model.GameID
	State     model.GameState
	WhoseTurn string
	RedScore  int
	BlueScore int
	Winner    string // empty until the game is finished
}

// Controller manages the game lifecycle and turn flow
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	clock        clock.Clock
	logger       *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		clock:        clock,
		logger:       logger,
	}
}

// CreateGame creates player one with the requested color and a game waiting for an opponent
func (c *Controller) CreateGame(ctx context.Context, color string) (*model.Game, *model.Player, error) {
	parsed, err := model.ParseColor(color)
	if err != nil {
		return nil, nil, err
	}

	player, err := c.storage.CreatePlayer(ctx, parsed)
	if err != nil {
		c.logStorageError("failed to create player", 0, err)
		return nil, nil, err
	}

	game, err := c.storage.CreateGame(ctx, player.ID)
	if err != nil {
		c.logStorageError("failed to create game", 0, err)
		return nil, nil, err
	}

	c.logger.Info("game created",
		slog.Int64("game_id", int64(game.ID)),
		slog.Int64("player_id", int64(player.ID)),
		slog.String("color", string(player.Color)),
	)

	return game, player, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// JoinGame adds the second player with the color player one did not pick and starts the game
func (c *Controller) JoinGame(ctx context.Context, gameID model.GameID) (*model.Game, *model.Player, error) {
	var (
		game   *model.Game
		player *model.Player
	)

	err := c.storage.Update(ctx, gameID, func(tx storage.GameTx) error {
		g := tx.Game()
		if g.IsFull() {
			return model.ErrGameFull
		}

		one, err := tx.GetPlayer(g.PlayerOne)
		if err != nil {
			return err
		}

		p, err := tx.CreatePlayer(one.Color.Opponent())
		if err != nil {
			return err
		}

		tx.SetPlayerTwo(p.ID)
		tx.SetGameState(model.GameStateInProgress)

		g.PlayerTwo = p.ID
		g.State = model.GameStateInProgress
		game, player = g, p
		return nil
	})
	if errors.Is(err, model.ErrStaleTurn) {
		// Lost the race to another join; report it the way a late join would see it
		if g, getErr := c.storage.GetGame(ctx, gameID); getErr == nil && g.IsFull() {
			err = model.ErrGameFull
		}
	}
	if err != nil {
		c.logStorageError("failed to join game", gameID, err)
		return nil, nil, err
	}

	c.logger.Info("player joined",
		slog.Int64("game_id", int64(gameID)),
		slog.Int64("player_id", int64(player.ID)),
		slog.String("color", string(player.Color)),
	)

	return game, player, nil
}

// ApplyMove draws an edge for a player. The move, any boxes it closes, the score and the
// state change are committed together or not at all.
func (c *Controller) ApplyMove(
	ctx context.Context,
	gameID model.GameID,
	playerID model.PlayerID,
	orientation model.Orientation,
	row, col int,
) (*MoveResult, error) {
	var result *MoveResult

	err := c.storage.Update(ctx, gameID, func(tx storage.GameTx) error {
		g := tx.Game()
		if !g.HasPlayer(playerID) {
			return model.ErrNotInGame
		}
		if g.State != model.GameStateInProgress {
			return model.ErrGameNotInProgress
		}

		colors, err := playerColors(tx, g)
		if err != nil {
			return err
		}
		mover := colors[playerID]

		b, moves, err := board.FromTx(tx)
		if err != nil {
			return err
		}

		if !turn.CanMove(moves, colors, mover) {
			return model.ErrNotPlayerTurn
		}

		edge := model.Edge{Orientation: orientation, Row: row, Col: col}
		if err := board.Validate(b, edge); err != nil {
			return err
		}

		completed := board.CompletedBoxes(b, edge)
		move := model.Move{
			GameID:     gameID,
			PlayerID:   playerID,
			Edge:       edge,
			AwardedBox: len(completed) > 0,
			Seq:        len(moves),
			CreatedAt:  c.clock.Now(),
		}
		tx.AppendMove(move)

		state := g.State
		if len(completed) > 0 {
			for _, box := range completed {
				tx.AppendBoxOwnership(model.BoxOwnership{
					GameID:  gameID,
					Color:   mover,
					Box:     box,
					MoveSeq: move.Seq,
				})
			}
			tx.IncrementScore(playerID, len(completed))

			if b.OwnedCount()+len(completed) == b.TotalBoxes() {
				tx.SetGameState(model.GameStateFinished)
				state = model.GameStateFinished
			}
		}

		next := string(turn.WhoseTurn(append(moves, move), colors))
		if state == model.GameStateFinished {
			next = TurnFinished
		}

		result = &MoveResult{
			Move:      move,
			Completed: completed,
			WhoseTurn: next,
			State:     state,
		}
		return nil
	})
	if err != nil {
		c.logStorageError("failed to apply move", gameID, err)
		return nil, err
	}

	c.boardService.Invalidate(gameID)

	c.logger.Info("move applied",
		slog.Int64("game_id", int64(gameID)),
		slog.Int64("player_id", int64(playerID)),
		slog.String("orientation", string(orientation)),
		slog.Int("row", row),
		slog.Int("col", col),
		slog.Int("boxes_completed", len(result.Completed)),
	)
	if result.State == model.GameStateFinished {
		c.logger.Info("game finished",
			slog.Int64("game_id", int64(gameID)),
			slog.Int("total_moves", result.Move.Seq+1),
		)
	}

	return result, nil
}

// playerColors maps every participant of g to their color
func playerColors(tx storage.GameTx, g *model.Game) (map[model.PlayerID]model.Color, error) {
	players := make([]*model.Player, 0, 2)
	for _, id := range g.Players() {
		p, err := tx.GetPlayer(id)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return turn.Colors(players...), nil
}

// GetState returns the scores and whose turn it is
func (c *Controller) GetState(ctx context.Context, gameID model.GameID) (*Status, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	status := &Status{
		GameID:    gameID,
		State:     game.State,
		WhoseTurn: string(model.ColorRed),
	}

	players := make([]*model.Player, 0, 2)
	for _, id := range game.Players() {
		p, err := c.storage.GetPlayer(ctx, id)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
		switch p.Color {
		case model.ColorRed:
			status.RedScore = p.Score
		case model.ColorBlue:
			status.BlueScore = p.Score
		}
	}

	switch game.State {
	case model.GameStateInProgress:
		moves, err := c.storage.ListMoves(ctx, gameID)
		if err != nil {
			return nil, err
		}
		status.WhoseTurn = string(turn.WhoseTurn(moves, turn.Colors(players...)))
	case model.GameStateFinished:
		status.WhoseTurn = TurnFinished
		status.Winner = winner(status.RedScore, status.BlueScore)
	}

	return status, nil
}

func winner(red, blue int) string {
	switch {
	case red > blue:
		return string(model.ColorRed)
	case blue > red:
		return string(model.ColorBlue)
	default:
		return WinnerTie
	}
}

// GetBoard returns the current board of a game
func (c *Controller) GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error) {
	return c.boardService.GetBoard(ctx, gameID)
}

// logStorageError logs failures that are not domain errors
func (c *Controller) logStorageError(msg string, gameID model.GameID, err error) {
	if model.KindOf(err) != model.KindInternal {
		return
	}
	c.logger.Error(msg,
		slog.Int64("game_id", int64(gameID)),
		slog.String("error", err.Error()),
	)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, color string) (*model.Game, *model.Player, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	JoinGame(ctx context.Context, gameID model.GameID) (*model.Game, *model.Player, error)
	ApplyMove(ctx context.Context, gameID model.GameID, playerID model.PlayerID, orientation model.Orientation, row, col int) (*MoveResult, error)
	GetState(ctx context.Context, gameID model.GameID) (*Status, error)
	GetBoard(ctx context.Context, gameID model.GameID) (*model.Board, error)
}

var _ ControllerInterface = (*Controller)(nil)
