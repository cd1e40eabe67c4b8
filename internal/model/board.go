package model

import "encoding/json"

// BoardSize is the footprint a board's occupied area must fit within.
// Coordinates are unbounded; the constraint is on the bounding box of the
// placed tiles, not on absolute positions.
const BoardSize = 5

// MaxBoardTiles is the number of tiles a full board holds
const MaxBoardTiles = BoardSize * BoardSize

// EmptyCellCode encodes an empty cell in the dense grid representation
const EmptyCellCode = 990

// Board is a player's sparse tile grid for a specific match.
// Tiles are keyed by position; the order slice records placement order so
// that every iteration over the board is deterministic.
type Board struct {
	MatchID  MatchID
	PlayerID PlayerID
	tiles    map[Position]Tile
	order    []Position
}

// NewBoard creates an empty board
func NewBoard(matchID MatchID, playerID PlayerID) *Board {
	return &Board{
		MatchID:  matchID,
		PlayerID: playerID,
		tiles:    map[Position]Tile{},
	}
}

// TileAt returns the tile at the given position, if any
func (b *Board) TileAt(pos Position) (Tile, bool) {
	t, ok := b.tiles[pos]
	return t, ok
}

// HasTile returns true if the position is occupied
func (b *Board) HasTile(pos Position) bool {
	_, ok := b.tiles[pos]
	return ok
}

// TileCount returns the number of placed tiles
func (b *Board) TileCount() int {
	return len(b.order)
}

// IsFull returns true when the board holds its maximum number of tiles
func (b *Board) IsFull() bool {
	return len(b.order) >= MaxBoardTiles
}

// Positions returns the occupied positions in placement order.
// The returned slice must not be modified.
func (b *Board) Positions() []Position {
	return b.order
}

// PlaceTile stores a copy of the tile at the given position
func (b *Board) PlaceTile(pos Position, tile Tile) error {
	if _, ok := b.tiles[pos]; ok {
		return ErrPositionOccupied
	}
	b.tiles[pos] = tile
	b.order = append(b.order, pos)
	return nil
}

// FlipTile toggles the flipped state of the tile at the given position
func (b *Board) FlipTile(pos Position) error {
	t, ok := b.tiles[pos]
	if !ok {
		return ErrPositionEmpty
	}
	t.Flip()
	b.tiles[pos] = t
	return nil
}

// CountFlippedTiles returns how many placed tiles are flipped
func (b *Board) CountFlippedTiles() int {
	count := 0
	for _, pos := range b.order {
		if b.tiles[pos].Flipped {
			count++
		}
	}
	return count
}

// BoundingBox returns the min and max corners of the occupied area.
// ok is false when the board is empty.
func (b *Board) BoundingBox() (min, max Position, ok bool) {
	if len(b.order) == 0 {
		return Position{}, Position{}, false
	}
	min = b.order[0]
	max = b.order[0]
	for _, pos := range b.order[1:] {
		if pos.Row < min.Row {
			min.Row = pos.Row
		}
		if pos.Col < min.Col {
			min.Col = pos.Col
		}
		if pos.Row > max.Row {
			max.Row = pos.Row
		}
		if pos.Col > max.Col {
			max.Col = pos.Col
		}
	}
	return min, max, true
}

// ComputeValidPositions returns every empty position that is orthogonally
// adjacent to a placed tile and keeps the occupied bounding box within the
// board footprint. Results follow placement order, each candidate reported
// once. An empty board has no valid positions; its first tile is placed
// unconditionally at the origin.
func (b *Board) ComputeValidPositions() []Position {
	if len(b.order) == 0 {
		return nil
	}
	min, max, _ := b.BoundingBox()
	seen := map[Position]bool{}
	var result []Position
	for _, pos := range b.order {
		for _, n := range pos.OrthogonalNeighbors() {
			if seen[n] || b.HasTile(n) {
				continue
			}
			seen[n] = true
			if b.fitsFootprint(n, min, max) {
				result = append(result, n)
			}
		}
	}
	return result
}

// IsValidPosition reports whether a tile may be placed at pos under the
// adjacency and footprint rules
func (b *Board) IsValidPosition(pos Position) bool {
	if b.HasTile(pos) {
		return false
	}
	min, max, ok := b.BoundingBox()
	if !ok {
		return false
	}
	adjacent := false
	for _, n := range pos.OrthogonalNeighbors() {
		if b.HasTile(n) {
			adjacent = true
			break
		}
	}
	return adjacent && b.fitsFootprint(pos, min, max)
}

func (b *Board) fitsFootprint(pos Position, min, max Position) bool {
	if pos.Row < min.Row {
		min.Row = pos.Row
	}
	if pos.Col < min.Col {
		min.Col = pos.Col
	}
	if pos.Row > max.Row {
		max.Row = pos.Row
	}
	if pos.Col > max.Col {
		max.Col = pos.Col
	}
	return max.Row-min.Row < BoardSize && max.Col-min.Col < BoardSize
}

// SnapshotOrigin returns the top-left corner of the dense grid view.
// The occupied area is anchored so that a full board maps exactly onto
// the 5x5 grid; a partial board is anchored at its bounding box corner.
func (b *Board) SnapshotOrigin() Position {
	min, _, ok := b.BoundingBox()
	if !ok {
		return Position{}
	}
	return min
}

// Encode renders the board as a dense 5x5 grid of cell codes.
// Each occupied cell is color*100 + symbol*10 + flipped bit; empty cells
// are EmptyCellCode.
func (b *Board) Encode() [BoardSize][BoardSize]int {
	var grid [BoardSize][BoardSize]int
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = EmptyCellCode
		}
	}
	origin := b.SnapshotOrigin()
	for _, pos := range b.order {
		r, c := pos.Row-origin.Row, pos.Col-origin.Col
		if r < 0 || r >= BoardSize || c < 0 || c >= BoardSize {
			continue
		}
		grid[r][c] = EncodeCell(b.tiles[pos])
	}
	return grid
}

// EncodeCell returns the three-digit cell code for a tile
func EncodeCell(t Tile) int {
	code := int(t.Color)*100 + int(t.Symbol)*10
	if t.Flipped {
		code++
	}
	return code
}

// DecodeCell parses a three-digit cell code. ok is false for an empty cell.
func DecodeCell(code int) (Tile, bool, error) {
	if code == EmptyCellCode {
		return Tile{}, false, nil
	}
	color := TileColor(code / 100)
	symbol := TileSymbol(code / 10 % 10)
	flipped := code % 10
	if !color.Valid() || !symbol.Valid() || flipped > 1 {
		return Tile{}, false, ErrInvalidTileCode
	}
	t := NewTile(color, symbol)
	t.Flipped = flipped == 1
	return t, true, nil
}

// DecodeBoard builds a board from a dense 5x5 grid of cell codes.
// Cells are scanned row-major, so the placement order of a decoded board
// is the scan order of its occupied cells.
func DecodeBoard(matchID MatchID, playerID PlayerID, grid [BoardSize][BoardSize]int) (*Board, error) {
	b := NewBoard(matchID, playerID)
	for r := range grid {
		for c := range grid[r] {
			tile, occupied, err := DecodeCell(grid[r][c])
			if err != nil {
				return nil, err
			}
			if !occupied {
				continue
			}
			if err := b.PlaceTile(Position{Row: r, Col: c}, tile); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// boardJSON is the wire form of a board. The placement list preserves
// insertion order, which map keys cannot.
type boardJSON struct {
	MatchID    MatchID         `json:"match_id"`
	PlayerID   PlayerID        `json:"player_id"`
	Placements []placementJSON `json:"placements"`
}

type placementJSON struct {
	Position Position `json:"position"`
	Tile     Tile     `json:"tile"`
}

// MarshalJSON implements json.Marshaler
func (b *Board) MarshalJSON() ([]byte, error) {
	out := boardJSON{
		MatchID:    b.MatchID,
		PlayerID:   b.PlayerID,
		Placements: make([]placementJSON, 0, len(b.order)),
	}
	for _, pos := range b.order {
		out.Placements = append(out.Placements, placementJSON{Position: pos, Tile: b.tiles[pos]})
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (b *Board) UnmarshalJSON(data []byte) error {
	var in boardJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b.MatchID = in.MatchID
	b.PlayerID = in.PlayerID
	b.tiles = make(map[Position]Tile, len(in.Placements))
	b.order = b.order[:0]
	for _, p := range in.Placements {
		if err := b.PlaceTile(p.Position, p.Tile); err != nil {
			return err
		}
	}
	return nil
}
