package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dotsgame/internal/api/request"
	"github.com/mcoot/dotsgame/internal/api/response"
	"github.com/mcoot/dotsgame/internal/model"
	"github.com/mcoot/dotsgame/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Create handles POST /dots/api/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, p, err := h.gameController.CreateGame(r.Context(), req.PlayerType)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, fmt.Sprintf("%s/%d", r.URL.Path, g.ID), response.SeatFromModel(g, p))
}

// Join handles PUT /dots/api/games/{gameId}
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, p, err := h.gameController.JoinGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SeatFromModel(g, p))
}

// HorizontalMove handles POST /dots/api/games/{gameId}/hmove
func (h *GameHandler) HorizontalMove(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, model.Horizontal)
}

// VerticalMove handles POST /dots/api/games/{gameId}/vmove
func (h *GameHandler) VerticalMove(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, model.Vertical)
}

func (h *GameHandler) move(w http.ResponseWriter, r *http.Request, orientation model.Orientation) {
	gameID, err := gameIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.MoveRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.PlayerID == 0 {
		WriteError(w, NewInvalidRequestError("playerId is required"))
		return
	}
	if req.Row == nil || req.Col == nil {
		WriteError(w, NewInvalidRequestError("row and col are required"))
		return
	}

	result, err := h.gameController.ApplyMove(
		r.Context(), gameID, model.PlayerID(req.PlayerID), orientation, *req.Row, *req.Col,
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveFromResult(result))
}

// State handles GET /dots/api/games/{gameId}/state
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	status, err := h.gameController.GetState(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromStatus(status))
}

// Board handles GET /dots/api/games/{gameId}/board
func (h *GameHandler) Board(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	b, err := h.gameController.GetBoard(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BoardFromModel(b))
}

func gameIDFromPath(r *http.Request) (model.GameID, error) {
	id, err := request.ParseID(mux.Vars(r)["gameId"])
	if err != nil {
		return 0, NewInvalidRequestError("gameId must be a positive integer")
	}
	return model.GameID(id), nil
}

// decodeBody parses a JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, request.ErrInvalidID) {
			return NewInvalidRequestError("playerId must be a positive integer")
		}
		return NewInvalidRequestError("Invalid request body")
	}
	return nil
}
