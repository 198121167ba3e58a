package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dotsgame/internal/api/handler"
	apimiddleware "github.com/mcoot/dotsgame/internal/api/middleware"
	"github.com/mcoot/dotsgame/internal/middleware"
	"github.com/mcoot/dotsgame/internal/services/game"
)

// BasePath is where the game routes are mounted
const BasePath = "/dots/api"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController)

	// Common middleware, outermost first
	r.Use(middleware.RequestID())
	r.Use(apimiddleware.Recovery(cfg.Logger))
	r.Use(apimiddleware.Logging(cfg.Logger))

	// Game routes
	games := r.PathPrefix(BasePath + "/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{gameId}", gameHandler.Join).Methods(http.MethodPut)
	games.HandleFunc("/{gameId}/hmove", gameHandler.HorizontalMove).Methods(http.MethodPost)
	games.HandleFunc("/{gameId}/vmove", gameHandler.VerticalMove).Methods(http.MethodPost)
	games.HandleFunc("/{gameId}/state", gameHandler.State).Methods(http.MethodGet)
	games.HandleFunc("/{gameId}/board", gameHandler.Board).Methods(http.MethodGet)

	// Health check endpoint
	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	return r
}
