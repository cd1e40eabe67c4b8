// Package savegame implements the portable save file format: a JSON
// document carrying every player's name, start tile, score and board
// grid, plus the turn index and the next central tile. The format is
// dense-grid based so a save file is readable and hand-editable.
package savegame

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pugroyal/pugroyal-go/internal/model"
)

// PlayerEntry is one player's slot in a save file.
// Initial is the player's start tile as a cell code (color*100 +
// symbol*10), or 990 when the player has none. Cards is the dense 5x5
// board grid of cell codes.
type PlayerEntry struct {
	Nr      int     `json:"nr"`
	Name    string  `json:"name"`
	Initial int     `json:"initial"`
	Points  int     `json:"points"`
	Cards   [][]int `json:"cards"`
}

// SaveGame is the on-disk shape of a saved match.
// Turn is the seat index of the player to place next; NextCard is the
// current central tile as a deck code, or 99 when the deck is exhausted.
type SaveGame struct {
	Players  []PlayerEntry `json:"players"`
	Turn     int           `json:"turn"`
	NextCard int           `json:"nextCard"`
}

// Write validates the save and emits it as indented JSON
func Write(w io.Writer, save *SaveGame) error {
	if err := save.Validate(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(save)
}

// Read parses and validates a save file
func Read(r io.Reader) (*SaveGame, error) {
	var save SaveGame
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&save); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSaveFile, err)
	}
	if err := save.Validate(); err != nil {
		return nil, err
	}
	return &save, nil
}

// Validate checks every structural rule of the format: player count,
// seat numbering, names, score and code ranges, and the 5x5 grid shape
func (s *SaveGame) Validate() error {
	if len(s.Players) < model.MinPlayers || len(s.Players) > model.MaxPlayers {
		return fmt.Errorf("%w: save must hold %d-%d players, has %d",
			model.ErrInvalidSaveFile, model.MinPlayers, model.MaxPlayers, len(s.Players))
	}
	if s.Turn < 0 || s.Turn >= len(s.Players) {
		return fmt.Errorf("%w: turn %d out of range for %d players",
			model.ErrInvalidSaveFile, s.Turn, len(s.Players))
	}
	if s.NextCard != model.NoNextTileCode {
		if _, err := model.TileFromDeckCode(s.NextCard); err != nil {
			return fmt.Errorf("%w: nextCard code %d", model.ErrInvalidSaveFile, s.NextCard)
		}
	}

	for i, entry := range s.Players {
		if err := validateEntry(i, entry); err != nil {
			return err
		}
	}
	return nil
}

func validateEntry(index int, entry PlayerEntry) error {
	if entry.Nr != index {
		return fmt.Errorf("%w: player %d has nr %d, expected seat order",
			model.ErrInvalidSaveFile, index, entry.Nr)
	}
	if strings.TrimSpace(entry.Name) == "" {
		return fmt.Errorf("%w: player %d has an empty name", model.ErrInvalidSaveFile, index)
	}
	if entry.Points < 0 {
		return fmt.Errorf("%w: player %d has negative points %d",
			model.ErrInvalidSaveFile, index, entry.Points)
	}

	if entry.Initial != model.EmptyCellCode {
		tile, ok, err := model.DecodeCell(entry.Initial)
		if err != nil || !ok || tile.Flipped {
			return fmt.Errorf("%w: player %d has invalid start tile code %d",
				model.ErrInvalidSaveFile, index, entry.Initial)
		}
	}

	if len(entry.Cards) != model.BoardSize {
		return fmt.Errorf("%w: player %d board has %d rows, want %d",
			model.ErrInvalidSaveFile, index, len(entry.Cards), model.BoardSize)
	}
	for r, row := range entry.Cards {
		if len(row) != model.BoardSize {
			return fmt.Errorf("%w: player %d board row %d has %d cells, want %d",
				model.ErrInvalidSaveFile, index, r, len(row), model.BoardSize)
		}
		for c, code := range row {
			if _, _, err := model.DecodeCell(code); err != nil {
				return fmt.Errorf("%w: player %d cell (%d,%d) code %d",
					model.ErrInvalidSaveFile, index, r, c, code)
			}
		}
	}
	return nil
}

// Grid converts an entry's card matrix to the fixed-size grid form.
// Only call after Validate has accepted the save.
func (e PlayerEntry) Grid() [model.BoardSize][model.BoardSize]int {
	var grid [model.BoardSize][model.BoardSize]int
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = e.Cards[r][c]
		}
	}
	return grid
}
