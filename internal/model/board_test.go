package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BoardSuite struct {
	suite.Suite
	board *Board
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) SetupTest() {
	s.board = NewBoard("match-1", "player-1")
}

func (s *BoardSuite) place(row, col int, color TileColor, symbol TileSymbol) {
	err := s.board.PlaceTile(Position{Row: row, Col: col}, NewTile(color, symbol))
	s.Require().NoError(err)
}

func (s *BoardSuite) TestPlaceAndGet() {
	s.place(0, 0, ColorBlue, SymbolBone)

	tile, ok := s.board.TileAt(Position{Row: 0, Col: 0})
	s.True(ok)
	s.Equal(ColorBlue, tile.Color)
	s.Equal(SymbolBone, tile.Symbol)
	s.Equal(1, s.board.TileCount())
}

func (s *BoardSuite) TestPlaceOccupied() {
	s.place(0, 0, ColorBlue, SymbolBone)

	err := s.board.PlaceTile(Position{Row: 0, Col: 0}, NewTile(ColorGreen, SymbolCan))
	s.ErrorIs(err, ErrPositionOccupied)
	s.Equal(1, s.board.TileCount())
}

func (s *BoardSuite) TestFlipTile() {
	s.place(0, 0, ColorBlue, SymbolBone)

	err := s.board.FlipTile(Position{Row: 0, Col: 0})
	s.NoError(err)

	tile, _ := s.board.TileAt(Position{Row: 0, Col: 0})
	s.True(tile.Flipped)
	s.Equal(1, s.board.CountFlippedTiles())
}

func (s *BoardSuite) TestFlipEmpty() {
	err := s.board.FlipTile(Position{Row: 2, Col: 2})
	s.ErrorIs(err, ErrPositionEmpty)
}

func (s *BoardSuite) TestPositionsPreserveInsertionOrder() {
	s.place(0, 0, ColorBlue, SymbolBone)
	s.place(-1, 0, ColorBlue, SymbolCan)
	s.place(0, 1, ColorBlue, SymbolPug)

	s.Equal([]Position{{0, 0}, {-1, 0}, {0, 1}}, s.board.Positions())
}

func (s *BoardSuite) TestValidPositionsEmptyBoard() {
	s.Empty(s.board.ComputeValidPositions())
	s.False(s.board.IsValidPosition(Position{Row: 0, Col: 0}))
}

func (s *BoardSuite) TestValidPositionsSingleTile() {
	s.place(0, 0, ColorBlue, SymbolBone)

	valid := s.board.ComputeValidPositions()
	s.ElementsMatch([]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}, valid)
}

func (s *BoardSuite) TestValidPositionsExcludeOccupied() {
	s.place(0, 0, ColorBlue, SymbolBone)
	s.place(0, 1, ColorBlue, SymbolCan)

	valid := s.board.ComputeValidPositions()
	s.NotContains(valid, Position{Row: 0, Col: 0})
	s.NotContains(valid, Position{Row: 0, Col: 1})
	s.Contains(valid, Position{Row: 0, Col: 2})
	s.Contains(valid, Position{Row: 0, Col: -1})
}

func (s *BoardSuite) TestValidPositionsFootprintLimit() {
	// A full-width row pins the columns: growing sideways would make the
	// bounding box 6 wide.
	for col := 0; col < 5; col++ {
		s.place(0, col, ColorBlue, TileSymbol(col+1))
	}

	valid := s.board.ComputeValidPositions()
	s.NotContains(valid, Position{Row: 0, Col: -1})
	s.NotContains(valid, Position{Row: 0, Col: 5})
	s.Contains(valid, Position{Row: 1, Col: 0})
	s.Contains(valid, Position{Row: -1, Col: 4})
}

func (s *BoardSuite) TestBoundingBox() {
	_, _, ok := s.board.BoundingBox()
	s.False(ok)

	s.place(2, 3, ColorBlue, SymbolBone)
	s.place(-1, 1, ColorGreen, SymbolCan)

	min, max, ok := s.board.BoundingBox()
	s.True(ok)
	s.Equal(Position{Row: -1, Col: 1}, min)
	s.Equal(Position{Row: 2, Col: 3}, max)
}

func (s *BoardSuite) TestEncodeEmptyBoard() {
	grid := s.board.Encode()
	for r := range grid {
		for c := range grid[r] {
			s.Equal(EmptyCellCode, grid[r][c])
		}
	}
}

func (s *BoardSuite) TestEncodeAnchorsAtBoundingBox() {
	s.place(-2, -1, ColorYellow, SymbolPoop)
	s.Require().NoError(s.board.FlipTile(Position{Row: -2, Col: -1}))
	s.place(-1, -1, ColorBlue, SymbolPillow)

	grid := s.board.Encode()
	s.Equal(651, grid[0][0]) // yellow poop, flipped
	s.Equal(110, grid[1][0]) // blue pillow
	s.Equal(EmptyCellCode, grid[0][1])
}

func (s *BoardSuite) TestDecodeBoardRoundTrip() {
	s.place(0, 0, ColorOrange, SymbolBowl)
	s.place(1, 0, ColorPink, SymbolCan)
	s.Require().NoError(s.board.FlipTile(Position{Row: 1, Col: 0}))

	decoded, err := DecodeBoard("match-1", "player-1", s.board.Encode())
	s.Require().NoError(err)
	s.Equal(2, decoded.TileCount())

	tile, ok := decoded.TileAt(Position{Row: 1, Col: 0})
	s.True(ok)
	s.Equal(ColorPink, tile.Color)
	s.True(tile.Flipped)
	s.True(tile.Crown)
}

func (s *BoardSuite) TestDecodeBoardInvalidCode() {
	var grid [BoardSize][BoardSize]int
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = EmptyCellCode
		}
	}
	grid[0][0] = 780 // color 7 out of range

	_, err := DecodeBoard("match-1", "player-1", grid)
	s.ErrorIs(err, ErrInvalidTileCode)
}

func (s *BoardSuite) TestJSONRoundTrip() {
	s.place(0, 0, ColorBlue, SymbolBone)
	s.place(0, 1, ColorGreen, SymbolPug)
	s.Require().NoError(s.board.FlipTile(Position{Row: 0, Col: 1}))

	data, err := json.Marshal(s.board)
	s.Require().NoError(err)

	var restored Board
	s.Require().NoError(json.Unmarshal(data, &restored))

	s.Equal(MatchID("match-1"), restored.MatchID)
	s.Equal(s.board.Positions(), restored.Positions())
	tile, ok := restored.TileAt(Position{Row: 0, Col: 1})
	s.True(ok)
	s.True(tile.Flipped)
	s.True(tile.Crown)
}
