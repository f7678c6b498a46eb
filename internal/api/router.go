package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/piranhas-client/internal/api/handler"
	"github.com/mcoot/piranhas-client/internal/api/middleware"
	"github.com/mcoot/piranhas-client/internal/api/response"
	"github.com/mcoot/piranhas-client/internal/observer"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger  *slog.Logger
	Tracker *observer.Tracker
	Hub     *observer.Hub // optional; no events route without it
	Version string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.Tracker, cfg.Hub, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game/moves", gameHandler.Moves).Methods(http.MethodGet)
	api.HandleFunc("/game/check", gameHandler.Check).Methods(http.MethodPost)
	if cfg.Hub != nil {
		api.HandleFunc("/events", gameHandler.Events).Methods(http.MethodGet)
	}

	api.HandleFunc("/health", healthHandler(cfg.Version)).Methods(http.MethodGet)

	return r
}

func healthHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Version: version})
	}
}
