package scoring

import (
	"github.com/pugroyal/pugroyal-go/internal/model"
)

// Base points by combination size
var basePoints = map[int]int{
	3: 2,
	4: 4,
	5: 7,
}

// CrownBonus is added once when any member tile carries a crown
const CrownBonus = 1

// Flip count bounds when settling a combination
const (
	MinFlips = 1
	MaxFlips = 2
)

// Service scores and settles combinations
type Service struct{}

// New creates a new scoring service
func New() *Service {
	return &Service{}
}

// Score computes the point value of a combination on a board:
// 2 points for 3 tiles, 4 for 4, 7 for 5, plus the crown bonus
func (s *Service) Score(combo model.Combination, board *model.Board) (int, error) {
	points, ok := basePoints[combo.Size()]
	if !ok {
		return 0, model.ErrInvalidCombinationSize
	}
	if combo.HasCrown(board) {
		points += CrownBonus
	}
	return points, nil
}

// Settle scores a combination and flips the chosen tiles.
// Between 1 and 2 tiles must be flipped, and each choice must be one of
// the combination's flippable positions. Nothing is mutated unless the
// whole selection validates.
func (s *Service) Settle(combo model.Combination, board *model.Board, flips []model.Position) (int, error) {
	if len(flips) < MinFlips || len(flips) > MaxFlips {
		return 0, model.ErrInvalidFlipSelection
	}
	for i, pos := range flips {
		if !combo.CanFlip(pos) {
			return 0, model.ErrInvalidFlipSelection
		}
		for _, earlier := range flips[:i] {
			if earlier == pos {
				return 0, model.ErrInvalidFlipSelection
			}
		}
	}

	points, err := s.Score(combo, board)
	if err != nil {
		return 0, err
	}

	for _, pos := range flips {
		if err := board.FlipTile(pos); err != nil {
			return 0, err
		}
	}
	return points, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Score(combo model.Combination, board *model.Board) (int, error)
	Settle(combo model.Combination, board *model.Board, flips []model.Position) (int, error)
}

var _ ServiceInterface = (*Service)(nil)
