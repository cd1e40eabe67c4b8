package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pugroyal/pugroyal-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        "player-1",
		MatchID:   "match-1",
		Seat:      0,
		Name:      "Alice",
		StartTile: model.NewTile(model.ColorBlue, model.SymbolBone),
		CreatedAt: time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(player.StartTile, retrieved.StartTile)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", Name: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatch() {
	match := &model.Match{
		ID:          "match-1",
		State:       model.MatchStatePlacing,
		Players:     []model.PlayerID{"p1", "p2"},
		Deck:        []int{11, 12, 13},
		CurrentTile: 14,
	}

	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(match.ID, retrieved.ID)
	s.Equal(match.State, retrieved.State)
	s.Equal(match.Deck, retrieved.Deck)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestDeleteMatch() {
	match := &model.Match{ID: "match-1", State: model.MatchStatePlacing}
	_ = s.storage.SaveMatch(s.ctx, match)

	err := s.storage.DeleteMatch(s.ctx, "match-1")
	s.Require().NoError(err)

	_, err = s.storage.GetMatch(s.ctx, "match-1")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// Board tests

func (s *StorageSuite) TestSaveAndGetBoard() {
	board := model.NewBoard("match-1", "player-1")
	err := board.PlaceTile(model.Position{Row: 0, Col: 0}, model.NewTile(model.ColorBlue, model.SymbolBone))
	s.Require().NoError(err)

	err = s.storage.SaveBoard(s.ctx, board)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBoard(s.ctx, "match-1", "player-1")
	s.Require().NoError(err)
	tile, ok := retrieved.TileAt(model.Position{Row: 0, Col: 0})
	s.True(ok)
	s.Equal(model.ColorBlue, tile.Color)
}

func (s *StorageSuite) TestGetBoardNotFound() {
	_, err := s.storage.GetBoard(s.ctx, "match-1", "nonexistent")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestGetBoardsForMatch() {
	board1 := model.NewBoard("match-1", "player-1")
	board2 := model.NewBoard("match-1", "player-2")
	board3 := model.NewBoard("match-2", "player-1") // Different match

	_ = s.storage.SaveBoard(s.ctx, board1)
	_ = s.storage.SaveBoard(s.ctx, board2)
	_ = s.storage.SaveBoard(s.ctx, board3)

	boards, err := s.storage.GetBoardsForMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Len(boards, 2)
}

func (s *StorageSuite) TestDeleteBoardsForMatch() {
	board1 := model.NewBoard("match-1", "player-1")
	board2 := model.NewBoard("match-1", "player-2")
	_ = s.storage.SaveBoard(s.ctx, board1)
	_ = s.storage.SaveBoard(s.ctx, board2)

	err := s.storage.DeleteBoardsForMatch(s.ctx, "match-1")
	s.Require().NoError(err)

	boards, err := s.storage.GetBoardsForMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Empty(boards)
}
