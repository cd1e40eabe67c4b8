package savegame

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pugroyal/pugroyal-go/internal/model"
)

type CodecSuite struct {
	suite.Suite
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecSuite))
}

// validSave builds a minimal two-player save: each board holds only the
// player's start tile in the top-left cell.
func (s *CodecSuite) validSave() *SaveGame {
	return &SaveGame{
		Players: []PlayerEntry{
			{Nr: 0, Name: "Alice", Initial: 120, Points: 0, Cards: gridWith(120)},
			{Nr: 1, Name: "Bob", Initial: 310, Points: 4, Cards: gridWith(310)},
		},
		Turn:     0,
		NextCard: 34,
	}
}

// gridWith returns an empty 5x5 matrix with the given code at (0,0)
func gridWith(code int) [][]int {
	rows := make([][]int, model.BoardSize)
	for r := range rows {
		rows[r] = make([]int, model.BoardSize)
		for c := range rows[r] {
			rows[r][c] = model.EmptyCellCode
		}
	}
	rows[0][0] = code
	return rows
}

func (s *CodecSuite) TestWriteReadRoundTrip() {
	save := s.validSave()

	var buf bytes.Buffer
	s.Require().NoError(Write(&buf, save))

	loaded, err := Read(&buf)
	s.Require().NoError(err)
	s.Equal(save, loaded)
}

func (s *CodecSuite) TestWriteEmitsExpectedFields() {
	var buf bytes.Buffer
	s.Require().NoError(Write(&buf, s.validSave()))

	out := buf.String()
	s.Contains(out, `"players"`)
	s.Contains(out, `"nextCard": 34`)
	s.Contains(out, `"initial": 120`)
}

func (s *CodecSuite) TestReadRejectsMalformedJSON() {
	_, err := Read(strings.NewReader(`{"players": [`))
	s.ErrorIs(err, model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestReadRejectsUnknownFields() {
	_, err := Read(strings.NewReader(`{"players": [], "turn": 0, "nextCard": 99, "extra": 1}`))
	s.ErrorIs(err, model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestValidateTooFewPlayers() {
	save := s.validSave()
	save.Players = save.Players[:1]
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestValidateTooManyPlayers() {
	save := s.validSave()
	for len(save.Players) <= model.MaxPlayers {
		extra := save.Players[0]
		extra.Nr = len(save.Players)
		save.Players = append(save.Players, extra)
	}
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestValidateTurnOutOfRange() {
	save := s.validSave()
	save.Turn = 2
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)

	save.Turn = -1
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestValidateNextCard() {
	save := s.validSave()
	save.NextCard = 10
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)

	save.NextCard = model.NoNextTileCode
	s.NoError(save.Validate())
}

func (s *CodecSuite) TestValidateSeatNumbering() {
	save := s.validSave()
	save.Players[1].Nr = 5
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestValidateEmptyName() {
	save := s.validSave()
	save.Players[0].Name = "   "
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestValidateNegativePoints() {
	save := s.validSave()
	save.Players[1].Points = -1
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestValidateStartTileCode() {
	save := s.validSave()

	// Flipped bit is never set on a start tile
	save.Players[0].Initial = 121
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)

	save.Players[0].Initial = 700
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)

	save.Players[0].Initial = model.EmptyCellCode
	s.NoError(save.Validate())
}

func (s *CodecSuite) TestValidateGridShape() {
	save := s.validSave()
	save.Players[0].Cards = save.Players[0].Cards[:4]
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)

	save = s.validSave()
	save.Players[0].Cards[2] = save.Players[0].Cards[2][:3]
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestValidateCellCode() {
	save := s.validSave()
	save.Players[1].Cards[3][3] = 125
	s.ErrorIs(save.Validate(), model.ErrInvalidSaveFile)
}

func (s *CodecSuite) TestValidateAcceptsFlippedCells() {
	save := s.validSave()
	save.Players[0].Cards[1][0] = 451
	s.NoError(save.Validate())
}
