package model

import "errors"

// ErrorKind classifies domain errors so callers can react without string matching
type ErrorKind int

const (
	KindInternal    ErrorKind = iota // storage failures and anything unclassified
	KindValidation                   // malformed or missing input
	KindNotFound                     // unknown game or player, or player not in game
	KindConflict                     // at-most-once operation already happened
	KindIllegalMove                  // rule violation while playing
)

// String returns the kind name used in logs and API error codes
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindIllegalMove:
		return "ILLEGAL_MOVE"
	default:
		return "INTERNAL"
	}
}

// Error is a domain error tagged with its kind
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Common errors used across the application
var (
	// Input errors
	ErrInvalidColor       = newError(KindValidation, "color must be RED or BLUE")
	ErrInvalidOrientation = newError(KindValidation, "orientation must be HORIZONTAL or VERTICAL")

	// Lookup errors
	ErrGameNotFound   = newError(KindNotFound, "game not found")
	ErrPlayerNotFound = newError(KindNotFound, "player not found")
	ErrNotInGame      = newError(KindNotFound, "player is not part of this game")

	// Lifecycle errors
	ErrGameFull = newError(KindConflict, "game already has two players")

	// Move errors
	ErrGameNotInProgress = newError(KindIllegalMove, "game is not in progress")
	ErrNotPlayerTurn     = newError(KindIllegalMove, "not this player's turn")
	ErrOutOfBounds       = newError(KindIllegalMove, "edge is outside the grid")
	ErrEdgeOccupied      = newError(KindIllegalMove, "edge is already drawn")
	ErrStaleTurn         = newError(KindIllegalMove, "game changed while the move was being applied")
)

// KindOf returns the kind of the first domain error in err's chain
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
