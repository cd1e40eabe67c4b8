package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pugroyal/pugroyal-go/internal/api/handler"
	"github.com/pugroyal/pugroyal-go/internal/api/middleware"
	"github.com/pugroyal/pugroyal-go/internal/savegame"
	"github.com/pugroyal/pugroyal-go/internal/services/board"
	"github.com/pugroyal/pugroyal-go/internal/services/match"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	MatchService    *match.Service
	BoardService    *board.Service
	SavegameService *savegame.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	matchHandler := handler.NewMatchHandler(cfg.MatchService, cfg.BoardService, cfg.SavegameService)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Match routes
	api.HandleFunc("/matches", matchHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/matches/savegame", matchHandler.Import).Methods(http.MethodPost)
	api.HandleFunc("/matches/{match_id}", matchHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/matches/{match_id}/players", matchHandler.Players).Methods(http.MethodGet)
	api.HandleFunc("/matches/{match_id}/standings", matchHandler.Standings).Methods(http.MethodGet)
	api.HandleFunc("/matches/{match_id}/savegame", matchHandler.Export).Methods(http.MethodGet)

	// Per-player routes
	api.HandleFunc("/matches/{match_id}/players/{player_id}/board", matchHandler.GetBoard).Methods(http.MethodGet)
	api.HandleFunc("/matches/{match_id}/players/{player_id}/valid-positions", matchHandler.ValidPositions).Methods(http.MethodGet)
	api.HandleFunc("/matches/{match_id}/players/{player_id}/combinations", matchHandler.Combinations).Methods(http.MethodGet)
	api.HandleFunc("/matches/{match_id}/players/{player_id}/place", matchHandler.Place).Methods(http.MethodPost)
	api.HandleFunc("/matches/{match_id}/players/{player_id}/settle", matchHandler.Settle).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
