package storage

import (
	"context"

	"github.com/pugroyal/pugroyal-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error

	// Board operations
	SaveBoard(ctx context.Context, board *model.Board) error
	GetBoard(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.Board, error)
	GetBoardsForMatch(ctx context.Context, matchID model.MatchID) ([]*model.Board, error)
	DeleteBoardsForMatch(ctx context.Context, matchID model.MatchID) error
}
