package model

// CombinationAttribute names the tile attribute a combination matches on
type CombinationAttribute string

const (
	AttributeColor  CombinationAttribute = "color"
	AttributeSymbol CombinationAttribute = "symbol"
)

// Combination is a group of 3-5 same-attribute tiles in a valid shape.
// Positions are in canonical row-then-column order. Flippable lists the
// positions the player may choose to flip when settling.
type Combination struct {
	Attribute CombinationAttribute `json:"attribute"`
	Positions []Position           `json:"positions"`
	Flippable []Position           `json:"flippable"`
}

// Size returns the number of member tiles
func (c Combination) Size() int {
	return len(c.Positions)
}

// Contains reports whether pos is a member of the combination
func (c Combination) Contains(pos Position) bool {
	for _, p := range c.Positions {
		if p == pos {
			return true
		}
	}
	return false
}

// CanFlip reports whether pos is one of the allowed flip choices
func (c Combination) CanFlip(pos Position) bool {
	for _, p := range c.Flippable {
		if p == pos {
			return true
		}
	}
	return false
}

// HasCrown reports whether any member tile on the board carries a crown
func (c Combination) HasCrown(board *Board) bool {
	for _, pos := range c.Positions {
		if t, ok := board.TileAt(pos); ok && t.Crown {
			return true
		}
	}
	return false
}
