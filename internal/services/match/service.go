package match

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pugroyal/pugroyal-go/internal/dependencies/clock"
	"github.com/pugroyal/pugroyal-go/internal/model"
	"github.com/pugroyal/pugroyal-go/internal/services/board"
	"github.com/pugroyal/pugroyal-go/internal/services/combo"
	"github.com/pugroyal/pugroyal-go/internal/services/deck"
	"github.com/pugroyal/pugroyal-go/internal/services/scoring"
	"github.com/pugroyal/pugroyal-go/internal/storage"
)

// Service orchestrates match lifecycle: creation, turn sequencing, the
// skip rules, settling and final standings
type Service struct {
	storage storage.Storage
	boards  board.ServiceInterface
	combos  combo.ServiceInterface
	scoring scoring.ServiceInterface
	decks   deck.ServiceInterface
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new match service
func New(
	storage storage.Storage,
	boards board.ServiceInterface,
	combos combo.ServiceInterface,
	scoringSvc scoring.ServiceInterface,
	decks deck.ServiceInterface,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		boards:  boards,
		combos:  combos,
		scoring: scoringSvc,
		decks:   decks,
		clock:   clk,
		logger:  logger,
	}
}

// PlaceResult reports the outcome of a placement: any combinations now
// available for settling, and whether the match ended
type PlaceResult struct {
	Combinations  []model.Combination
	MatchComplete bool
}

// CreateMatch sets up a match for 2-4 named players.
// Every player receives a distinct non-royal start tile placed at the
// origin of their board; the start tiles remain in the shared central
// deck. The first central tile is drawn immediately.
func (s *Service) CreateMatch(ctx context.Context, names []string) (*model.Match, error) {
	if len(names) < model.MinPlayers || len(names) > model.MaxPlayers {
		return nil, model.ErrInvalidPlayerCount
	}

	now := s.clock.Now()
	match := &model.Match{
		ID:        model.MatchID(uuid.NewString()),
		State:     model.MatchStatePlacing,
		Deck:      s.decks.NewDeck(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	startTiles, err := s.decks.DrawStartTiles(match.Deck, len(names))
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, len(names))
	for seat, name := range names {
		player := &model.Player{
			ID:        model.PlayerID(uuid.NewString()),
			MatchID:   match.ID,
			Seat:      seat,
			Name:      name,
			StartTile: startTiles[seat],
			CreatedAt: now,
		}
		if err := s.storage.SavePlayer(ctx, player); err != nil {
			return nil, err
		}
		if _, err := s.boards.CreateBoard(ctx, match.ID, player.ID, player.StartTile); err != nil {
			return nil, err
		}
		players[seat] = player
		match.Players = append(match.Players, player.ID)
	}

	match.DrawCentralTile()
	if err := s.autoSkip(ctx, match); err != nil {
		return nil, err
	}

	if err := s.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info("match created",
		"match_id", match.ID,
		"players", len(names),
		"current_tile", match.CurrentTile)
	return match, nil
}

// GetMatch retrieves a match
func (s *Service) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return s.storage.GetMatch(ctx, id)
}

// GetPlayers retrieves all players of a match in seat order
func (s *Service) GetPlayers(ctx context.Context, id model.MatchID) ([]*model.Player, error) {
	match, err := s.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(match.Players))
	for _, playerID := range match.Players {
		player, err := s.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

// PlaceTile places the current central tile for the player whose turn it
// is, advances the turn, applies the skip rules, and reports any
// combinations the placement opened up
func (s *Service) PlaceTile(ctx context.Context, matchID model.MatchID, playerID model.PlayerID, pos model.Position) (*PlaceResult, error) {
	match, err := s.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.IsComplete() {
		return nil, model.ErrMatchComplete
	}
	if !match.HasCurrentTile() {
		return nil, model.ErrNoTileToPlace
	}
	if match.CurrentPlayer() != playerID {
		return nil, model.ErrNotPlayerTurn
	}

	tile, err := model.TileFromDeckCode(match.CurrentTile)
	if err != nil {
		return nil, err
	}

	playerBoard, err := s.boards.GetBoard(ctx, matchID, playerID)
	if err != nil {
		return nil, err
	}
	if err := s.boards.PlaceTile(ctx, playerBoard, tile, pos); err != nil {
		return nil, err
	}

	match.Turn++
	match.AdvancePlayer()
	if err := s.autoSkip(ctx, match); err != nil {
		return nil, err
	}
	if err := s.checkMatchEnd(ctx, match); err != nil {
		return nil, err
	}

	match.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info("tile placed",
		"match_id", matchID,
		"player_id", playerID,
		"row", pos.Row,
		"col", pos.Col,
		"tile", tile.DeckCode())

	return &PlaceResult{
		Combinations:  s.combos.FindAll(playerBoard),
		MatchComplete: match.IsComplete(),
	}, nil
}

// ListCombinations returns every settleable combination on the player's
// board across both attributes
func (s *Service) ListCombinations(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) ([]model.Combination, error) {
	playerBoard, err := s.boards.GetBoard(ctx, matchID, playerID)
	if err != nil {
		return nil, err
	}
	return s.combos.FindAll(playerBoard), nil
}

// SettleCombination scores a combination for the player and flips the
// chosen tiles. The combination must currently be available on the
// player's board; settling is optional and never forced.
func (s *Service) SettleCombination(ctx context.Context, matchID model.MatchID, playerID model.PlayerID, positions []model.Position, flips []model.Position) (int, error) {
	playerBoard, err := s.boards.GetBoard(ctx, matchID, playerID)
	if err != nil {
		return 0, err
	}

	selected := s.findCombination(playerBoard, positions)
	if selected == nil {
		return 0, model.ErrCombinationNotFound
	}

	points, err := s.scoring.Settle(*selected, playerBoard, flips)
	if err != nil {
		return 0, err
	}
	if err := s.boards.SaveBoard(ctx, playerBoard); err != nil {
		return 0, err
	}

	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}
	player.AddScore(points)
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return 0, err
	}

	s.logger.Info("combination settled",
		"match_id", matchID,
		"player_id", playerID,
		"size", len(positions),
		"points", points)
	return points, nil
}

// FinalStandings returns the score table. Winner flags are set only once
// the match is complete: highest score wins, ties broken by fewest
// flipped tiles, full ties shared.
func (s *Service) FinalStandings(ctx context.Context, matchID model.MatchID) ([]model.Standing, error) {
	match, err := s.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	standings := make([]model.Standing, 0, len(match.Players))
	for _, playerID := range match.Players {
		player, err := s.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}
		playerBoard, err := s.boards.GetBoard(ctx, matchID, playerID)
		if err != nil {
			return nil, err
		}
		standings = append(standings, model.Standing{
			PlayerID:     playerID,
			Name:         player.Name,
			Score:        player.Score,
			FlippedTiles: playerBoard.CountFlippedTiles(),
		})
	}

	if match.IsComplete() {
		markWinners(standings)
	}
	return standings, nil
}

// markWinners flags the best standing rows: max score, then fewest flips
func markWinners(standings []model.Standing) {
	if len(standings) == 0 {
		return
	}

	best := standings[0]
	for _, row := range standings[1:] {
		if row.Score > best.Score ||
			(row.Score == best.Score && row.FlippedTiles < best.FlippedTiles) {
			best = row
		}
	}
	for i := range standings {
		if standings[i].Score == best.Score && standings[i].FlippedTiles == best.FlippedTiles {
			standings[i].Winner = true
		}
	}
}

// findCombination locates the available combination with exactly the
// given member positions
func (s *Service) findCombination(playerBoard *model.Board, positions []model.Position) *model.Combination {
	want := map[model.Position]bool{}
	for _, pos := range positions {
		want[pos] = true
	}

	for _, candidate := range s.combos.FindAll(playerBoard) {
		if len(candidate.Positions) != len(want) {
			continue
		}
		match := true
		for _, pos := range candidate.Positions {
			if !want[pos] {
				match = false
				break
			}
		}
		if match {
			return &candidate
		}
	}
	return nil
}

// autoSkip advances past players who cannot place the current tile:
// a full board, or the central tile being their own start tile (which
// also flags them for catch-up). Drawing past the last seat may surface
// a new central tile, so the loop keeps going until a player can act,
// the deck runs out, or everyone has been skipped in a full cycle.
func (s *Service) autoSkip(ctx context.Context, match *model.Match) error {
	skipped := 0
	for match.HasCurrentTile() && skipped < len(match.Players) {
		playerID := match.CurrentPlayer()
		playerBoard, err := s.boards.GetBoard(ctx, match.ID, playerID)
		if err != nil {
			return err
		}

		if playerBoard.IsFull() {
			match.AdvancePlayer()
			skipped++
			continue
		}

		player, err := s.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		if player.StartTile.DeckCode() == match.CurrentTile {
			player.CatchUp = true
			if err := s.storage.SavePlayer(ctx, player); err != nil {
				return err
			}
			s.logger.Info("player skipped own start tile",
				"match_id", match.ID,
				"player_id", playerID)
			match.AdvancePlayer()
			skipped++
			continue
		}

		return nil
	}
	return nil
}

// checkMatchEnd marks the match complete when every board is full or the
// deck has run dry
func (s *Service) checkMatchEnd(ctx context.Context, match *model.Match) error {
	if !match.HasCurrentTile() {
		match.State = model.MatchStateComplete
		return nil
	}

	boards, err := s.boards.GetBoardsForMatch(ctx, match.ID)
	if err != nil {
		return err
	}
	for _, b := range boards {
		if !b.IsFull() {
			return nil
		}
	}
	match.State = model.MatchStateComplete
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateMatch(ctx context.Context, names []string) (*model.Match, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	GetPlayers(ctx context.Context, id model.MatchID) ([]*model.Player, error)
	PlaceTile(ctx context.Context, matchID model.MatchID, playerID model.PlayerID, pos model.Position) (*PlaceResult, error)
	ListCombinations(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) ([]model.Combination, error)
	SettleCombination(ctx context.Context, matchID model.MatchID, playerID model.PlayerID, positions []model.Position, flips []model.Position) (int, error)
	FinalStandings(ctx context.Context, matchID model.MatchID) ([]model.Standing, error)
}

var _ ServiceInterface = (*Service)(nil)
