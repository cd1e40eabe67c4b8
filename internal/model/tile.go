package model

// TileColor is one of the six tile colors, encoded 1-6
type TileColor int

const (
	ColorBlue   TileColor = 1
	ColorGreen  TileColor = 2
	ColorOrange TileColor = 3
	ColorPink   TileColor = 4
	ColorPurple TileColor = 5
	ColorYellow TileColor = 6
)

// TileSymbol is one of the six tile symbols, encoded 1-6
type TileSymbol int

const (
	SymbolPillow TileSymbol = 1
	SymbolBone   TileSymbol = 2
	SymbolBowl   TileSymbol = 3
	SymbolCan    TileSymbol = 4
	SymbolPoop   TileSymbol = 5
	SymbolPug    TileSymbol = 6
)

// Valid reports whether the color code is in range
func (c TileColor) Valid() bool {
	return c >= 1 && c <= 6
}

// Valid reports whether the symbol code is in range
func (s TileSymbol) Valid() bool {
	return s >= 1 && s <= 6
}

// The six royal color/symbol pairings. Royal tiles carry a crown and may
// not be dealt as start tiles.
var royalPairs = map[TileColor]TileSymbol{
	ColorBlue:   SymbolPillow,
	ColorYellow: SymbolPoop,
	ColorGreen:  SymbolPug,
	ColorPurple: SymbolBone,
	ColorOrange: SymbolBowl,
	ColorPink:   SymbolCan,
}

// IsRoyal reports whether the color/symbol pairing carries a crown
func IsRoyal(color TileColor, symbol TileSymbol) bool {
	return royalPairs[color] == symbol
}

// Tile is a single game piece. Color and Symbol identify the tile for
// grouping; Crown is derived once at construction; Flipped is toggled when
// the tile is spent in a scored combination.
type Tile struct {
	Color   TileColor  `json:"color"`
	Symbol  TileSymbol `json:"symbol"`
	Crown   bool       `json:"crown"`
	Flipped bool       `json:"flipped"`
}

// NewTile creates a tile with the crown flag derived from the royal table
func NewTile(color TileColor, symbol TileSymbol) Tile {
	return Tile{
		Color:  color,
		Symbol: symbol,
		Crown:  IsRoyal(color, symbol),
	}
}

// Flip toggles the flipped state
func (t *Tile) Flip() {
	t.Flipped = !t.Flipped
}

// SameIdentity reports whether two tiles have the same color and symbol.
// Flipped and crown state do not participate in identity.
func (t Tile) SameIdentity(other Tile) bool {
	return t.Color == other.Color && t.Symbol == other.Symbol
}

// Deck codes are two-digit scalars color*10+symbol (11-66), used by the
// save format for the next-tile slot and by match state for the deck.
const NoNextTileCode = 99

// DeckCode returns the tile's two-digit deck code
func (t Tile) DeckCode() int {
	return int(t.Color)*10 + int(t.Symbol)
}

// TileFromDeckCode decodes a two-digit deck code into a tile
func TileFromDeckCode(code int) (Tile, error) {
	color := TileColor(code / 10)
	symbol := TileSymbol(code % 10)
	if !color.Valid() || !symbol.Valid() {
		return Tile{}, ErrInvalidTileCode
	}
	return NewTile(color, symbol), nil
}
