package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/piranhas-client/internal/observer"
	"github.com/mcoot/piranhas-client/internal/web/handler"
	"github.com/mcoot/piranhas-client/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger  *slog.Logger
	Tracker *observer.Tracker
	Live    bool // reload the page on websocket updates
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	boardHandler := handler.NewBoardHandler(cfg.Tracker, cfg.Live)

	r.Handle("/", http.RedirectHandler("/board", http.StatusSeeOther)).Methods(http.MethodGet)
	r.HandleFunc("/board", boardHandler.Board).Methods(http.MethodGet)

	return r
}
