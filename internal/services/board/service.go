package board

import (
	"context"

	"github.com/pugroyal/pugroyal-go/internal/model"
	"github.com/pugroyal/pugroyal-go/internal/storage"
)

// Service provides board operations
type Service struct {
	storage storage.Storage
}

// New creates a new board service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// CreateBoard initializes a board for a player, seeded with their start
// tile at the origin
func (s *Service) CreateBoard(ctx context.Context, matchID model.MatchID, playerID model.PlayerID, startTile model.Tile) (*model.Board, error) {
	board := model.NewBoard(matchID, playerID)
	if err := board.PlaceTile(model.Position{}, startTile); err != nil {
		return nil, err
	}
	if err := s.storage.SaveBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// GetBoard retrieves a player's board
func (s *Service) GetBoard(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.Board, error) {
	return s.storage.GetBoard(ctx, matchID, playerID)
}

// GetBoardsForMatch retrieves all boards in a match
func (s *Service) GetBoardsForMatch(ctx context.Context, matchID model.MatchID) ([]*model.Board, error) {
	return s.storage.GetBoardsForMatch(ctx, matchID)
}

// SaveBoard persists a board
func (s *Service) SaveBoard(ctx context.Context, board *model.Board) error {
	return s.storage.SaveBoard(ctx, board)
}

// PlaceTile places a tile on a board and persists the result.
// An empty board accepts its first tile anywhere; afterwards the position
// must be orthogonally adjacent to a placed tile and keep the occupied
// area within the 5x5 footprint.
func (s *Service) PlaceTile(ctx context.Context, board *model.Board, tile model.Tile, pos model.Position) error {
	if err := s.ValidatePlacement(board, pos); err != nil {
		return err
	}

	if err := board.PlaceTile(pos, tile); err != nil {
		return err
	}
	return s.storage.SaveBoard(ctx, board)
}

// ValidatePlacement checks the adjacency and footprint rules for pos
func (s *Service) ValidatePlacement(board *model.Board, pos model.Position) error {
	if board.HasTile(pos) {
		return model.ErrPositionOccupied
	}
	if board.TileCount() == 0 {
		return nil
	}
	if !board.IsValidPosition(pos) {
		// Distinguish the two failure modes for error reporting
		for _, n := range pos.OrthogonalNeighbors() {
			if board.HasTile(n) {
				return model.ErrPlacementOutOfBounds
			}
		}
		return model.ErrPlacementNotAdjacent
	}
	return nil
}

// ValidPositions returns every legal placement on the board
func (s *Service) ValidPositions(board *model.Board) []model.Position {
	return board.ComputeValidPositions()
}

// IsFull checks if the board holds its maximum number of tiles
func (s *Service) IsFull(board *model.Board) bool {
	return board.IsFull()
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateBoard(ctx context.Context, matchID model.MatchID, playerID model.PlayerID, startTile model.Tile) (*model.Board, error)
	GetBoard(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.Board, error)
	GetBoardsForMatch(ctx context.Context, matchID model.MatchID) ([]*model.Board, error)
	SaveBoard(ctx context.Context, board *model.Board) error
	PlaceTile(ctx context.Context, board *model.Board, tile model.Tile, pos model.Position) error
	ValidatePlacement(board *model.Board, pos model.Position) error
	ValidPositions(board *model.Board) []model.Position
	IsFull(board *model.Board) bool
}

var _ ServiceInterface = (*Service)(nil)
