package deck

import (
	"github.com/pugroyal/pugroyal-go/internal/model"

	"github.com/pugroyal/pugroyal-go/internal/dependencies/random"
)

// DeckSize is the full central deck: 6 colors x 6 symbols
const DeckSize = 36

// Service builds and manipulates a match's central tile deck.
// The deck is stored as a slice of two-digit deck codes on the match, so
// the service works on code slices rather than a deck object of its own.
type Service struct {
	random random.Random
}

// New creates a new deck service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// NewDeck returns all 36 tile codes in a shuffled order
func (s *Service) NewDeck() []int {
	codes := make([]int, 0, DeckSize)
	for color := model.TileColor(1); color <= 6; color++ {
		for symbol := model.TileSymbol(1); symbol <= 6; symbol++ {
			codes = append(codes, model.NewTile(color, symbol).DeckCode())
		}
	}
	s.shuffle(codes)
	return codes
}

// DrawStartTiles picks one distinct non-royal start tile per player.
// Start tiles are NOT removed from the deck: each tile exists once, and a
// player must sit out the round in which their own start tile comes up as
// the central tile.
func (s *Service) DrawStartTiles(deck []int, count int) ([]model.Tile, error) {
	assigned := map[int]bool{}
	tiles := make([]model.Tile, 0, count)

	for len(tiles) < count {
		code := deck[s.random.Intn(len(deck))]
		tile, err := model.TileFromDeckCode(code)
		if err != nil {
			return nil, err
		}
		if tile.Crown || assigned[code] {
			continue
		}
		assigned[code] = true
		tiles = append(tiles, tile)
	}

	return tiles, nil
}

// MarkPlayed removes the given codes from the deck, once each.
// Used when restoring a saved match: tiles already on boards cannot be
// drawn again.
func (s *Service) MarkPlayed(deck []int, played []int) []int {
	toRemove := map[int]int{}
	for _, code := range played {
		toRemove[code]++
	}

	remaining := make([]int, 0, len(deck))
	for _, code := range deck {
		if toRemove[code] > 0 {
			toRemove[code]--
			continue
		}
		remaining = append(remaining, code)
	}
	return remaining
}

// shuffle performs a Fisher-Yates shuffle using the injected random source
func (s *Service) shuffle(codes []int) {
	for i := len(codes) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		codes[i], codes[j] = codes[j], codes[i]
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	NewDeck() []int
	DrawStartTiles(deck []int, count int) ([]model.Tile, error)
	MarkPlayed(deck []int, played []int) []int
}

var _ ServiceInterface = (*Service)(nil)
