package response

import (
	"github.com/pugroyal/pugroyal-go/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID        string `json:"id"`
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	StartTile int    `json:"start_tile"`
	CatchUp   bool   `json:"catch_up,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Seat:      p.Seat,
		Name:      p.Name,
		Score:     p.Score,
		StartTile: p.StartTile.DeckCode(),
		CatchUp:   p.CatchUp,
	}
}

// Match represents a match in API responses.
// CurrentTile is a two-digit deck code, or 99 once the deck is empty.
type Match struct {
	ID            string   `json:"id"`
	State         string   `json:"state"`
	Players       []string `json:"players"`
	CurrentPlayer string   `json:"current_player"`
	Turn          int      `json:"turn"`
	CurrentTile   int      `json:"current_tile"`
	DeckRemaining int      `json:"deck_remaining"`
}

// MatchFromModel converts model.Match
func MatchFromModel(m *model.Match) Match {
	players := make([]string, len(m.Players))
	for i, p := range m.Players {
		players[i] = string(p)
	}
	return Match{
		ID:            string(m.ID),
		State:         string(m.State),
		Players:       players,
		CurrentPlayer: string(m.CurrentPlayer()),
		Turn:          m.Turn,
		CurrentTile:   m.CurrentTile,
		DeckRemaining: len(m.Deck),
	}
}

// Board represents a player's board as a dense 5x5 grid of cell codes,
// anchored at the board's snapshot origin
type Board struct {
	Cells        [][]int        `json:"cells"`
	Origin       model.Position `json:"origin"`
	TileCount    int            `json:"tile_count"`
	FlippedTiles int            `json:"flipped_tiles"`
}

// BoardFromModel converts model.Board to response Board
func BoardFromModel(b *model.Board) Board {
	grid := b.Encode()
	cells := make([][]int, len(grid))
	for r := range grid {
		cells[r] = make([]int, len(grid[r]))
		copy(cells[r], grid[r][:])
	}
	return Board{
		Cells:        cells,
		Origin:       b.SnapshotOrigin(),
		TileCount:    b.TileCount(),
		FlippedTiles: b.CountFlippedTiles(),
	}
}

// Combination represents a settleable combination
type Combination struct {
	Attribute string           `json:"attribute"`
	Positions []model.Position `json:"positions"`
	Flippable []model.Position `json:"flippable"`
}

// CombinationFromModel converts model.Combination
func CombinationFromModel(c model.Combination) Combination {
	return Combination{
		Attribute: string(c.Attribute),
		Positions: c.Positions,
		Flippable: c.Flippable,
	}
}

// CombinationsFromModel converts a slice of combinations
func CombinationsFromModel(combos []model.Combination) []Combination {
	out := make([]Combination, len(combos))
	for i, c := range combos {
		out[i] = CombinationFromModel(c)
	}
	return out
}

// Standing is one row of the result table
type Standing struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	FlippedTiles int    `json:"flipped_tiles"`
	Winner       bool   `json:"winner"`
}

// StandingFromModel converts model.Standing
func StandingFromModel(s model.Standing) Standing {
	return Standing{
		PlayerID:     string(s.PlayerID),
		Name:         s.Name,
		Score:        s.Score,
		FlippedTiles: s.FlippedTiles,
		Winner:       s.Winner,
	}
}

// ValidPositionsResponse lists the placements open to a player
type ValidPositionsResponse struct {
	Positions []model.Position `json:"positions"`
}

// PlaceResponse is the response after placing a tile
type PlaceResponse struct {
	Match         Match         `json:"match"`
	Board         Board         `json:"board"`
	Combinations  []Combination `json:"combinations"`
	MatchComplete bool          `json:"match_complete"`
}

// SettleResponse is the response after settling a combination
type SettleResponse struct {
	Points int   `json:"points"`
	Board  Board `json:"board"`
}
