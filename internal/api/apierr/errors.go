package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/dotsgame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidColor       = "INVALID_COLOR"
	CodeInvalidOrientation = "INVALID_ORIENTATION"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeNotInGame          = "NOT_IN_GAME"
	CodeGameFull           = "GAME_FULL"
	CodeGameNotInProgress  = "GAME_NOT_IN_PROGRESS"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeOutOfBounds        = "OUT_OF_BOUNDS"
	CodeEdgeOccupied       = "EDGE_OCCUPIED"
	CodeStaleTurn          = "STALE_TURN"
	CodeInternalError      = "INTERNAL_ERROR"
)

// codes gives each domain sentinel its own code; other domain errors use their kind's name
var codes = map[*model.Error]string{
	model.ErrInvalidColor:       CodeInvalidColor,
	model.ErrInvalidOrientation: CodeInvalidOrientation,
	model.ErrGameNotFound:       CodeGameNotFound,
	model.ErrPlayerNotFound:     CodePlayerNotFound,
	model.ErrNotInGame:          CodeNotInGame,
	model.ErrGameFull:           CodeGameFull,
	model.ErrGameNotInProgress:  CodeGameNotInProgress,
	model.ErrNotPlayerTurn:      CodeNotYourTurn,
	model.ErrOutOfBounds:        CodeOutOfBounds,
	model.ErrEdgeOccupied:       CodeEdgeOccupied,
	model.ErrStaleTurn:          CodeStaleTurn,
}

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var de *model.Error
	if !errors.As(err, &de) {
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}

	code, ok := codes[de]
	if !ok {
		code = de.Kind.String()
	}
	return &httpError{statusForKind(de.Kind), APIError{code, de.Message}}
}

func statusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		// Joining a full game answers 410 Gone, which existing clients expect
		return http.StatusGone
	case model.KindIllegalMove:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{"NOT_FOUND", "Not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
