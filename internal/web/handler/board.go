package handler

import (
	"net/http"

	"github.com/mcoot/piranhas-client/internal/observer"
	"github.com/mcoot/piranhas-client/internal/web/templates/layout"
	"github.com/mcoot/piranhas-client/internal/web/templates/pages"
)

// BoardHandler renders the live board page
type BoardHandler struct {
	tracker *observer.Tracker
	live    bool
}

// NewBoardHandler creates a new BoardHandler. live adds the websocket
// reload script and needs the events route to be served.
func NewBoardHandler(tracker *observer.Tracker, live bool) *BoardHandler {
	return &BoardHandler{tracker: tracker, live: live}
}

// Board renders the board page
func (h *BoardHandler) Board(w http.ResponseWriter, r *http.Request) {
	data := pages.BoardData{
		PageData: layout.PageData{
			Title: "Piranhas",
			Live:  h.live,
		},
		View: h.tracker.View(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Board(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
