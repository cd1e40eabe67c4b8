package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// MatchState represents the current phase of a match
type MatchState string

const (
	MatchStatePlacing  MatchState = "placing"  // Players placing the central tile
	MatchStateComplete MatchState = "complete" // All boards full or deck exhausted
)

// Player count bounds for a match
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Match represents a single game instance.
// The central deck is shared; one tile is drawn per round and every player
// places that same tile in seat order. Deck and CurrentTile hold two-digit
// deck codes; CurrentTile is NoNextTileCode when the deck has run dry.
type Match struct {
	ID    MatchID
	State MatchState

	// Players in seat order
	Players []PlayerID

	// Turn management
	CurrentIdx  int   // Index into Players for the player to place next
	Turn        int   // Count of placements made across all players
	Deck        []int // Remaining central deck, top of the deck first
	CurrentTile int   // The tile every player places this round

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentPlayer returns the PlayerID whose turn it is
func (m *Match) CurrentPlayer() PlayerID {
	if len(m.Players) == 0 {
		return ""
	}
	return m.Players[m.CurrentIdx]
}

// HasCurrentTile reports whether a central tile is available to place
func (m *Match) HasCurrentTile() bool {
	return m.CurrentTile != NoNextTileCode
}

// AdvancePlayer moves to the next seat; after the last seat a fresh central
// tile is drawn from the deck
func (m *Match) AdvancePlayer() {
	previous := m.CurrentIdx
	m.CurrentIdx = (m.CurrentIdx + 1) % len(m.Players)
	if previous == len(m.Players)-1 {
		m.DrawCentralTile()
	}
}

// DrawCentralTile pops the top of the deck into the current tile slot
func (m *Match) DrawCentralTile() {
	if len(m.Deck) == 0 {
		m.CurrentTile = NoNextTileCode
		return
	}
	m.CurrentTile = m.Deck[0]
	m.Deck = m.Deck[1:]
}

// IsComplete returns true once the match has ended
func (m *Match) IsComplete() bool {
	return m.State == MatchStateComplete
}

// Standing is one row of the final result table
type Standing struct {
	PlayerID     PlayerID `json:"player_id"`
	Name         string   `json:"name"`
	Score        int      `json:"score"`
	FlippedTiles int      `json:"flipped_tiles"`
	Winner       bool     `json:"winner"`
}
