package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a match participant
type Player struct {
	ID        PlayerID
	MatchID   MatchID
	Seat      int // 0-indexed seat order within the match
	Name      string
	Score     int
	StartTile Tile // the non-royal tile seeded at the board origin
	CatchUp   bool // set when the player had to skip their own start tile
	CreatedAt time.Time
}

// AddScore adds points to the player's running total
func (p *Player) AddScore(points int) {
	p.Score += points
}
