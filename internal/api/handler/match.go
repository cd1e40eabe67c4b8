package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pugroyal/pugroyal-go/internal/api/request"
	"github.com/pugroyal/pugroyal-go/internal/api/response"
	"github.com/pugroyal/pugroyal-go/internal/model"
	"github.com/pugroyal/pugroyal-go/internal/savegame"
	"github.com/pugroyal/pugroyal-go/internal/services/board"
	"github.com/pugroyal/pugroyal-go/internal/services/match"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	matches match.ServiceInterface
	boards  board.ServiceInterface
	saves   savegame.ServiceInterface
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matches match.ServiceInterface, boards board.ServiceInterface, saves savegame.ServiceInterface) *MatchHandler {
	return &MatchHandler{
		matches: matches,
		boards:  boards,
		saves:   saves,
	}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	m, err := h.matches.CreateMatch(r.Context(), req.PlayerNames)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// Get handles GET /api/v1/matches/{match_id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["match_id"])

	m, err := h.matches.GetMatch(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Players handles GET /api/v1/matches/{match_id}/players
func (h *MatchHandler) Players(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["match_id"])

	players, err := h.matches.GetPlayers(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Player, len(players))
	for i, p := range players {
		out[i] = response.PlayerFromModel(p)
	}
	response.JSON(w, http.StatusOK, out)
}

// Standings handles GET /api/v1/matches/{match_id}/standings
func (h *MatchHandler) Standings(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["match_id"])

	standings, err := h.matches.FinalStandings(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Standing, len(standings))
	for i, s := range standings {
		out[i] = response.StandingFromModel(s)
	}
	response.JSON(w, http.StatusOK, out)
}

// GetBoard handles GET /api/v1/matches/{match_id}/players/{player_id}/board
func (h *MatchHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := model.MatchID(vars["match_id"])
	playerID := model.PlayerID(vars["player_id"])

	playerBoard, err := h.boards.GetBoard(r.Context(), matchID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BoardFromModel(playerBoard))
}

// ValidPositions handles GET /api/v1/matches/{match_id}/players/{player_id}/valid-positions
func (h *MatchHandler) ValidPositions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := model.MatchID(vars["match_id"])
	playerID := model.PlayerID(vars["player_id"])

	playerBoard, err := h.boards.GetBoard(r.Context(), matchID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ValidPositionsResponse{
		Positions: h.boards.ValidPositions(playerBoard),
	})
}

// Combinations handles GET /api/v1/matches/{match_id}/players/{player_id}/combinations
func (h *MatchHandler) Combinations(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := model.MatchID(vars["match_id"])
	playerID := model.PlayerID(vars["player_id"])

	combos, err := h.matches.ListCombinations(r.Context(), matchID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CombinationsFromModel(combos))
}

// Place handles POST /api/v1/matches/{match_id}/players/{player_id}/place
func (h *MatchHandler) Place(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := model.MatchID(vars["match_id"])
	playerID := model.PlayerID(vars["player_id"])

	var req request.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	pos := model.Position{Row: req.Row, Col: req.Col}
	result, err := h.matches.PlaceTile(r.Context(), matchID, playerID, pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matches.GetMatch(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}
	playerBoard, err := h.boards.GetBoard(r.Context(), matchID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaceResponse{
		Match:         response.MatchFromModel(m),
		Board:         response.BoardFromModel(playerBoard),
		Combinations:  response.CombinationsFromModel(result.Combinations),
		MatchComplete: result.MatchComplete,
	})
}

// Settle handles POST /api/v1/matches/{match_id}/players/{player_id}/settle
func (h *MatchHandler) Settle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := model.MatchID(vars["match_id"])
	playerID := model.PlayerID(vars["player_id"])

	var req request.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	points, err := h.matches.SettleCombination(r.Context(), matchID, playerID, req.Positions, req.Flips)
	if err != nil {
		WriteError(w, err)
		return
	}

	playerBoard, err := h.boards.GetBoard(r.Context(), matchID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettleResponse{
		Points: points,
		Board:  response.BoardFromModel(playerBoard),
	})
}

// Export handles GET /api/v1/matches/{match_id}/savegame
func (h *MatchHandler) Export(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["match_id"])

	// Buffer the save so failures still produce a proper error response
	var buf bytes.Buffer
	if err := h.saves.Export(r.Context(), matchID, &buf); err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Import handles POST /api/v1/matches/savegame
func (h *MatchHandler) Import(w http.ResponseWriter, r *http.Request) {
	m, err := h.saves.Import(r.Context(), r.Body)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}
