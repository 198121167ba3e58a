package handler

import (
	"net/http"

	"github.com/mcoot/dotsgame/internal/api/apierr"
	"github.com/mcoot/dotsgame/internal/api/response"
)

// Health handles GET /health
func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

// NotFound answers unknown routes with a JSON error
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, apierr.NewNotFoundError())
}
