package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pugroyal/pugroyal-go/internal/api"
	"github.com/pugroyal/pugroyal-go/internal/api/request"
	"github.com/pugroyal/pugroyal-go/internal/api/response"
	"github.com/pugroyal/pugroyal-go/internal/factory"
	"github.com/pugroyal/pugroyal-go/internal/model"
	"github.com/pugroyal/pugroyal-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		MatchService:    app.MatchService,
		BoardService:    app.BoardService,
		SavegameService: app.SavegameService,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createMatch creates a two-player match and returns its state
func createMatch(t *testing.T, ts *testServer, names ...string) response.Match {
	t.Helper()

	if len(names) == 0 {
		names = []string{"Alice", "Bob"}
	}
	rr := ts.request(http.MethodPost, "/api/v1/matches", request.CreateMatchRequest{PlayerNames: names})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var m response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateMatch(t *testing.T) {
	ts := newTestServer(t)

	m := createMatch(t, ts)
	assert.Equal(t, "placing", m.State)
	assert.Len(t, m.Players, 2)
	assert.NotEmpty(t, m.CurrentPlayer)
	assert.GreaterOrEqual(t, m.CurrentTile, 11)
	assert.LessOrEqual(t, m.CurrentTile, 66)
}

func TestCreateMatchInvalidPlayerCount(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches", request.CreateMatchRequest{PlayerNames: []string{"Solo"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_PLAYER_COUNT")
}

func TestGetMatchNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/matches/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "MATCH_NOT_FOUND")
}

func TestGetPlayersAndBoards(t *testing.T) {
	ts := newTestServer(t)
	m := createMatch(t, ts)

	rr := ts.request(http.MethodGet, "/api/v1/matches/"+m.ID+"/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var players []response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "Bob", players[1].Name)

	for _, p := range players {
		rr := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/matches/%s/players/%s/board", m.ID, p.ID), nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var b response.Board
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &b))
		assert.Equal(t, 1, b.TileCount)
		require.Len(t, b.Cells, model.BoardSize)

		occupied := 0
		for _, row := range b.Cells {
			require.Len(t, row, model.BoardSize)
			for _, code := range row {
				if code != model.EmptyCellCode {
					occupied++
				}
			}
		}
		assert.Equal(t, 1, occupied)
	}
}

func TestValidPositions(t *testing.T) {
	ts := newTestServer(t)
	m := createMatch(t, ts)

	path := fmt.Sprintf("/api/v1/matches/%s/players/%s/valid-positions", m.ID, m.CurrentPlayer)
	rr := ts.request(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.ValidPositionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	// A lone start tile has exactly its four orthogonal neighbors open
	assert.Len(t, resp.Positions, 4)
}

func TestPlaceTile(t *testing.T) {
	ts := newTestServer(t)
	m := createMatch(t, ts)

	path := fmt.Sprintf("/api/v1/matches/%s/players/%s/place", m.ID, m.CurrentPlayer)
	rr := ts.request(http.MethodPost, path, request.PlaceRequest{Row: 0, Col: 1})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.PlaceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Board.TileCount)
	assert.Equal(t, 1, resp.Match.Turn)
}

func TestPlaceTileWrongTurn(t *testing.T) {
	ts := newTestServer(t)
	m := createMatch(t, ts)

	// Find the player who is not up
	var waiting string
	for _, id := range m.Players {
		if id != m.CurrentPlayer {
			waiting = id
		}
	}
	require.NotEmpty(t, waiting)

	path := fmt.Sprintf("/api/v1/matches/%s/players/%s/place", m.ID, waiting)
	rr := ts.request(http.MethodPost, path, request.PlaceRequest{Row: 0, Col: 1})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_YOUR_TURN")
}

func TestPlaceTileNotAdjacent(t *testing.T) {
	ts := newTestServer(t)
	m := createMatch(t, ts)

	path := fmt.Sprintf("/api/v1/matches/%s/players/%s/place", m.ID, m.CurrentPlayer)
	rr := ts.request(http.MethodPost, path, request.PlaceRequest{Row: 3, Col: 3})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_ADJACENT")
}

func TestCombinationsInitiallyEmpty(t *testing.T) {
	ts := newTestServer(t)
	m := createMatch(t, ts)

	path := fmt.Sprintf("/api/v1/matches/%s/players/%s/combinations", m.ID, m.CurrentPlayer)
	rr := ts.request(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var combos []response.Combination
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &combos))
	assert.Empty(t, combos)
}

func TestSettleCombinationNotFound(t *testing.T) {
	ts := newTestServer(t)
	m := createMatch(t, ts)

	path := fmt.Sprintf("/api/v1/matches/%s/players/%s/settle", m.ID, m.CurrentPlayer)
	body := request.SettleRequest{
		Positions: []model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		Flips:     []model.Position{{Row: 0, Col: 1}},
	}
	rr := ts.request(http.MethodPost, path, body)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "COMBINATION_NOT_FOUND")
}

func TestExportImportSavegame(t *testing.T) {
	ts := newTestServer(t)
	m := createMatch(t, ts)

	rr := ts.request(http.MethodGet, "/api/v1/matches/"+m.ID+"/savegame", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"players"`)
	assert.Contains(t, rr.Body.String(), `"nextCard"`)

	// Import the exported save as a fresh match
	importRR := ts.request(http.MethodPost, "/api/v1/matches/savegame", json.RawMessage(rr.Body.Bytes()))
	require.Equal(t, http.StatusCreated, importRR.Code, importRR.Body.String())

	var restored response.Match
	require.NoError(t, json.Unmarshal(importRR.Body.Bytes(), &restored))
	assert.NotEqual(t, m.ID, restored.ID)
	assert.Equal(t, m.CurrentTile, restored.CurrentTile)
	assert.Len(t, restored.Players, 2)
}

func TestImportRejectsInvalidSave(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches/savegame", json.RawMessage(`{"players": [], "turn": 0, "nextCard": 99}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_SAVE_FILE")
}

func TestStandingsBeforeCompletion(t *testing.T) {
	ts := newTestServer(t)
	m := createMatch(t, ts)

	rr := ts.request(http.MethodGet, "/api/v1/matches/"+m.ID+"/standings", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var standings []response.Standing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	require.Len(t, standings, 2)
	for _, row := range standings {
		assert.False(t, row.Winner)
	}
}
