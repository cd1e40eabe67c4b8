package memory

import (
	"context"
	"sync"

	"github.com/pugroyal/pugroyal-go/internal/model"
	"github.com/pugroyal/pugroyal-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	matches map[model.MatchID]*model.Match
	boards  map[boardKey]*model.Board
}

type boardKey struct {
	matchID  model.MatchID
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
		matches: make(map[model.MatchID]*model.Match),
		boards:  make(map[boardKey]*model.Board),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = match
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

// Board operations

func (s *Storage) SaveBoard(ctx context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := boardKey{matchID: board.MatchID, playerID: board.PlayerID}
	s.boards[key] = board
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := boardKey{matchID: matchID, playerID: playerID}
	board, ok := s.boards[key]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	return board, nil
}

func (s *Storage) GetBoardsForMatch(ctx context.Context, matchID model.MatchID) ([]*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var boards []*model.Board
	for key, board := range s.boards {
		if key.matchID == matchID {
			boards = append(boards, board)
		}
	}
	return boards, nil
}

func (s *Storage) DeleteBoardsForMatch(ctx context.Context, matchID model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.boards {
		if key.matchID == matchID {
			delete(s.boards, key)
		}
	}
	return nil
}
