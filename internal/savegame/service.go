package savegame

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pugroyal/pugroyal-go/internal/dependencies/clock"
	"github.com/pugroyal/pugroyal-go/internal/model"
	"github.com/pugroyal/pugroyal-go/internal/services/deck"
	"github.com/pugroyal/pugroyal-go/internal/storage"
)

// Service exports a running match to the save format and restores a
// match from a save file. Restoring rebuilds the central deck by
// removing every tile visible on a board, every start tile and the
// pending central tile from a fresh shuffled deck.
type Service struct {
	storage storage.Storage
	decks   deck.ServiceInterface
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new savegame service
func New(storage storage.Storage, decks deck.ServiceInterface, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		decks:   decks,
		clock:   clk,
		logger:  logger,
	}
}

// Export writes the match's current state as a save file
func (s *Service) Export(ctx context.Context, matchID model.MatchID, w io.Writer) error {
	match, err := s.storage.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	save := &SaveGame{
		Turn:     match.CurrentIdx,
		NextCard: match.CurrentTile,
	}
	for seat, playerID := range match.Players {
		player, err := s.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		playerBoard, err := s.storage.GetBoard(ctx, matchID, playerID)
		if err != nil {
			return err
		}
		save.Players = append(save.Players, PlayerEntry{
			Nr:      seat,
			Name:    player.Name,
			Initial: startTileCode(player.StartTile),
			Points:  player.Score,
			Cards:   gridRows(playerBoard.Encode()),
		})
	}

	if err := Write(w, save); err != nil {
		return err
	}
	s.logger.Info("match exported", "match_id", matchID, "turn", save.Turn)
	return nil
}

// Import reads a save file and materializes it as a new match.
// The restored match gets fresh IDs; only names, boards, scores and the
// turn state carry over.
func (s *Service) Import(ctx context.Context, r io.Reader) (*model.Match, error) {
	save, err := Read(r)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	match := &model.Match{
		ID:          model.MatchID(uuid.NewString()),
		State:       model.MatchStatePlacing,
		CurrentIdx:  save.Turn,
		CurrentTile: save.NextCard,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var played []int
	allFull := true
	for seat, entry := range save.Players {
		player := &model.Player{
			ID:        model.PlayerID(uuid.NewString()),
			MatchID:   match.ID,
			Seat:      seat,
			Name:      entry.Name,
			Score:     entry.Points,
			CreatedAt: now,
		}
		if entry.Initial != model.EmptyCellCode {
			tile, _, err := model.DecodeCell(entry.Initial)
			if err != nil {
				return nil, err
			}
			player.StartTile = tile
			played = append(played, tile.DeckCode())
		}

		playerBoard, err := model.DecodeBoard(match.ID, player.ID, entry.Grid())
		if err != nil {
			return nil, err
		}
		for _, pos := range playerBoard.Positions() {
			tile, _ := playerBoard.TileAt(pos)
			played = append(played, tile.DeckCode())
		}
		if !playerBoard.IsFull() {
			allFull = false
		}
		// Turn counts placements beyond the seeded start tile
		if count := playerBoard.TileCount(); count > 0 {
			match.Turn += count - 1
		}

		if err := s.storage.SavePlayer(ctx, player); err != nil {
			return nil, err
		}
		if err := s.storage.SaveBoard(ctx, playerBoard); err != nil {
			return nil, err
		}
		match.Players = append(match.Players, player.ID)
	}

	match.Deck = s.decks.MarkPlayed(s.decks.NewDeck(), played)
	if match.CurrentTile != model.NoNextTileCode {
		match.Deck = s.decks.MarkPlayed(match.Deck, []int{match.CurrentTile})
	}

	if !match.HasCurrentTile() || allFull {
		match.State = model.MatchStateComplete
	}

	if err := s.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info("match imported",
		"match_id", match.ID,
		"players", len(match.Players),
		"deck_remaining", len(match.Deck))
	return match, nil
}

// startTileCode encodes a start tile for the save file, 990 when unset
func startTileCode(t model.Tile) int {
	if !t.Color.Valid() {
		return model.EmptyCellCode
	}
	return int(t.Color)*100 + int(t.Symbol)*10
}

// gridRows converts the fixed-size grid to the wire matrix
func gridRows(grid [model.BoardSize][model.BoardSize]int) [][]int {
	rows := make([][]int, model.BoardSize)
	for r := range grid {
		rows[r] = make([]int, model.BoardSize)
		copy(rows[r], grid[r][:])
	}
	return rows
}

// Interface for dependency injection
type ServiceInterface interface {
	Export(ctx context.Context, matchID model.MatchID, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (*model.Match, error)
}

var _ ServiceInterface = (*Service)(nil)
