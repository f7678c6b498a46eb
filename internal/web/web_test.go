package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/piranhas-client/internal/dependencies/mocks"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/observer"
	"github.com/mcoot/piranhas-client/internal/protocol"
	"github.com/mcoot/piranhas-client/internal/services/board"
	"github.com/mcoot/piranhas-client/internal/testutil"
	"github.com/mcoot/piranhas-client/internal/web"
)

// newTestRouter wires the web router to a tracker without a hub
func newTestRouter(t *testing.T) (http.Handler, *observer.Tracker) {
	t.Helper()
	tracker := observer.NewTracker(nil, mocks.NewMockClock(time.Unix(0, 0)), testutil.NopLogger())
	router := web.NewRouter(web.RouterConfig{
		Logger:  testutil.NopLogger(),
		Tracker: tracker,
	})
	return router, tracker
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

// parseHTML parses the response body as HTML
func parseHTML(t *testing.T, r io.Reader) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(r)
	require.NoError(t, err)
	return doc
}

func cornerBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.New(model.PlayerRed)
	require.NoError(t, b.SetFieldState(0, 9, model.FieldRed))
	require.NoError(t, b.SetFieldState(3, 0, model.FieldRed))
	require.NoError(t, b.SetFieldState(9, 0, model.FieldBlue))
	require.NoError(t, b.SetFieldState(5, 5, model.FieldObstructed))
	require.NoError(t, b.PerformMove(model.NewMove(3, 0, model.DirectionLeft)))
	return b
}

func TestRootRedirectsToBoard(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := get(router, "/")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/board", rr.Header().Get("Location"))
}

func TestBoardPageBeforeFirstState(t *testing.T) {
	router, tracker := newTestRouter(t)
	tracker.OnPhaseChanged(protocol.PhaseJoined)

	rr := get(router, "/board")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(t, rr.Body)
	assert.Equal(t, 1, doc.Find("#waiting").Length())
	assert.Equal(t, 0, doc.Find("#game-board").Length())
	assert.Contains(t, doc.Find("#game-status").Text(), "joined")
	assert.Equal(t, 0, doc.Find("script").Length())
}

func TestBoardPageShowsCells(t *testing.T) {
	router, tracker := newTestRouter(t)
	tracker.OnColorAssigned(model.PlayerRed)
	tracker.OnPhaseChanged(protocol.PhaseActive)
	tracker.OnGameStateUpdated(cornerBoard(t))

	doc := parseHTML(t, get(router, "/board").Body)

	assert.Equal(t, model.BoardSize*model.BoardSize, doc.Find("#game-board td").Length())
	assert.Equal(t, 2, doc.Find("td.cell-red").Length())
	assert.Equal(t, 1, doc.Find("td.cell-blue").Length())
	assert.Equal(t, 1, doc.Find("td.cell-obstructed").Length())

	// Two piranhas on row 0, so the red piece moved from (3,0) to (1,0)
	landing := doc.Find(`td[data-x="1"][data-y="0"]`)
	assert.True(t, landing.HasClass("cell-red"))
	assert.True(t, landing.HasClass("last-move"))
	origin := doc.Find(`td[data-x="3"][data-y="0"]`)
	assert.True(t, origin.HasClass("cell-empty"))
	assert.True(t, origin.HasClass("last-move"))
	assert.False(t, doc.Find(`td[data-x="2"][data-y="0"]`).HasClass("last-move"))
	assert.Equal(t, 2, doc.Find("td.last-move").Length())

	// Top row is y = 9
	assert.Equal(t, "9", doc.Find("#game-board tr").First().Find("th").Text())
	assert.True(t, doc.Find("#game-board tr").First().Find("td").First().HasClass("cell-red"))

	status := doc.Find("#game-status").Text()
	assert.Contains(t, status, "active")
	assert.Contains(t, status, "BLUE")
}

func TestBoardPageShowsResult(t *testing.T) {
	router, tracker := newTestRouter(t)
	tracker.OnGameStateUpdated(cornerBoard(t))
	tracker.OnGameResultReceived(model.GameResult{
		Scores: []model.Score{
			{Cause: model.CauseRegular, Values: []float64{2, 10}},
			{Cause: model.CauseLeft, Reason: "opponent <left>", Values: []float64{0, 0}},
		},
		Winner: &model.Winner{DisplayName: "alice", Color: model.PlayerRed},
	})

	doc := parseHTML(t, get(router, "/board").Body)

	result := doc.Find("#game-result")
	require.Equal(t, 1, result.Length())
	assert.Contains(t, result.Find(".outcome").Text(), "alice (RED)")
	assert.Equal(t, 2, result.Find(".scores li").Length())
	assert.Contains(t, result.Find(".scores li").Last().Text(), "opponent <left>")
}

func TestBoardPageEscapesServerText(t *testing.T) {
	router, tracker := newTestRouter(t)
	tracker.OnGameStateUpdated(cornerBoard(t))
	tracker.OnGameResultReceived(model.GameResult{
		Scores: []model.Score{
			{Cause: model.CauseRuleViolation, Reason: `"><script>alert(1)</script>`, Values: []float64{0, 2}},
		},
		Winner: &model.Winner{DisplayName: `<img src=x onerror="alert(1)">`, Color: model.PlayerBlue},
	})

	rr := get(router, "/board")
	body := rr.Body.String()
	assert.NotContains(t, body, "<img")
	assert.NotContains(t, body, "<script>alert")

	doc := parseHTML(t, strings.NewReader(body))
	assert.Equal(t, 0, doc.Find("#game-result img").Length())
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Contains(t, doc.Find(".outcome").Text(), `<img src=x onerror="alert(1)"> (BLUE)`)
	assert.Contains(t, doc.Find(".scores li").Text(), `"><script>alert(1)</script>`)
}

func TestLivePageIncludesReloadScript(t *testing.T) {
	tracker := observer.NewTracker(nil, mocks.NewMockClock(time.Unix(0, 0)), testutil.NopLogger())
	router := web.NewRouter(web.RouterConfig{
		Logger:  testutil.NopLogger(),
		Tracker: tracker,
		Live:    true,
	})

	doc := parseHTML(t, get(router, "/board").Body)
	assert.Contains(t, doc.Find("script").Text(), "/api/v1/events")
}
