package model

// Position identifies a cell on a player's grid.
// Coordinates are unbounded and may be negative; the occupied area of a
// board is constrained elsewhere to a 5x5 footprint.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Neighbourhood offsets, in a fixed scan order so that every caller
// discovers neighbours deterministically.
var (
	orthogonalOffsets = [4]Position{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}
	diagonalOffsets   = [4]Position{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
	allOffsets        = [8]Position{
		{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1},
		{Row: 0, Col: -1}, {Row: 0, Col: 1},
		{Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	}
)

// OrthogonalNeighbors returns the four edge-adjacent positions.
func (p Position) OrthogonalNeighbors() [4]Position {
	var result [4]Position
	for i, off := range orthogonalOffsets {
		result[i] = Position{Row: p.Row + off.Row, Col: p.Col + off.Col}
	}
	return result
}

// DiagonalNeighbors returns the four corner-adjacent positions.
func (p Position) DiagonalNeighbors() [4]Position {
	var result [4]Position
	for i, off := range diagonalOffsets {
		result[i] = Position{Row: p.Row + off.Row, Col: p.Col + off.Col}
	}
	return result
}

// AllNeighbors returns all eight surrounding positions.
func (p Position) AllNeighbors() [8]Position {
	var result [8]Position
	for i, off := range allOffsets {
		result[i] = Position{Row: p.Row + off.Row, Col: p.Col + off.Col}
	}
	return result
}

// Less orders positions by row, then column. Used for canonical ordering
// of combination members.
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// ManhattanDistance returns |dr| + |dc| between two positions.
func (p Position) ManhattanDistance(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
