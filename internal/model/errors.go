package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Match errors
	ErrMatchNotFound        = errors.New("match not found")
	ErrInvalidPlayerCount   = errors.New("match requires between 2 and 4 players")
	ErrNotPlayerTurn        = errors.New("not this player's turn")
	ErrMatchComplete        = errors.New("match is already complete")
	ErrDeckExhausted        = errors.New("tile deck is exhausted")
	ErrNoTileToPlace        = errors.New("no central tile to place")
	ErrPlacementNotAdjacent = errors.New("position is not adjacent to a placed tile")
	ErrPlacementOutOfBounds = errors.New("position would exceed the board footprint")

	// Board errors
	ErrBoardNotFound    = errors.New("board not found")
	ErrPositionOccupied = errors.New("position is already occupied")
	ErrPositionEmpty    = errors.New("no tile at position")
	ErrInvalidTileCode  = errors.New("invalid tile code")

	// Combination errors
	ErrInvalidCombinationSize = errors.New("combination size must be 3, 4 or 5")
	ErrInvalidFlipSelection   = errors.New("flip selection is not allowed for this combination")
	ErrCombinationNotFound    = errors.New("combination is not available on this board")

	// Save file errors
	ErrInvalidSaveFile = errors.New("invalid save file")
)
