package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pugroyal/pugroyal-go/internal/model"
	"github.com/pugroyal/pugroyal-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(memory.New())
	s.ctx = context.Background()
}

func (s *ServiceSuite) createBoard() *model.Board {
	board, err := s.service.CreateBoard(s.ctx, "match-1", "player-1", model.NewTile(model.ColorBlue, model.SymbolBone))
	s.Require().NoError(err)
	return board
}

func (s *ServiceSuite) TestCreateBoardSeedsStartTile() {
	board := s.createBoard()

	tile, ok := board.TileAt(model.Position{})
	s.True(ok)
	s.Equal(model.ColorBlue, tile.Color)
	s.Equal(1, board.TileCount())

	// Persisted
	stored, err := s.service.GetBoard(s.ctx, "match-1", "player-1")
	s.Require().NoError(err)
	s.Equal(1, stored.TileCount())
}

func (s *ServiceSuite) TestPlaceTileAdjacent() {
	board := s.createBoard()

	err := s.service.PlaceTile(s.ctx, board, model.NewTile(model.ColorGreen, model.SymbolCan), model.Position{Row: 0, Col: 1})
	s.NoError(err)
	s.Equal(2, board.TileCount())
}

func (s *ServiceSuite) TestPlaceTileNotAdjacent() {
	board := s.createBoard()

	err := s.service.PlaceTile(s.ctx, board, model.NewTile(model.ColorGreen, model.SymbolCan), model.Position{Row: 3, Col: 3})
	s.ErrorIs(err, model.ErrPlacementNotAdjacent)
	s.Equal(1, board.TileCount())
}

func (s *ServiceSuite) TestPlaceTileOccupied() {
	board := s.createBoard()

	err := s.service.PlaceTile(s.ctx, board, model.NewTile(model.ColorGreen, model.SymbolCan), model.Position{})
	s.ErrorIs(err, model.ErrPositionOccupied)
}

func (s *ServiceSuite) TestPlaceTileOutOfBounds() {
	board := s.createBoard()
	for col := 1; col < 5; col++ {
		err := s.service.PlaceTile(s.ctx, board, model.NewTile(model.ColorGreen, model.TileSymbol(col+1)), model.Position{Row: 0, Col: col})
		s.Require().NoError(err)
	}

	// A sixth column would stretch the footprint beyond 5 wide
	err := s.service.PlaceTile(s.ctx, board, model.NewTile(model.ColorGreen, model.SymbolCan), model.Position{Row: 0, Col: 5})
	s.ErrorIs(err, model.ErrPlacementOutOfBounds)
}

func (s *ServiceSuite) TestFirstTileAnywhere() {
	board := model.NewBoard("match-2", "player-9")

	err := s.service.PlaceTile(s.ctx, board, model.NewTile(model.ColorPink, model.SymbolCan), model.Position{Row: 7, Col: -3})
	s.NoError(err)
}

func (s *ServiceSuite) TestValidPositions() {
	board := s.createBoard()

	valid := s.service.ValidPositions(board)
	s.Len(valid, 4)
}

func (s *ServiceSuite) TestGetBoardsForMatch() {
	s.createBoard()
	_, err := s.service.CreateBoard(s.ctx, "match-1", "player-2", model.NewTile(model.ColorGreen, model.SymbolCan))
	s.Require().NoError(err)

	boards, err := s.service.GetBoardsForMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Len(boards, 2)
}

func (s *ServiceSuite) TestIsFull() {
	board := s.createBoard()
	s.False(s.service.IsFull(board))
}
