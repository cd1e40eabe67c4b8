package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pugroyal/pugroyal-go/internal/model"
	"github.com/pugroyal/pugroyal-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, matchKey(match.ID), data, s.cfg.MatchTTL).Err()
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	return s.client.Del(ctx, matchKey(id)).Err()
}

// Board operations

func (s *Storage) SaveBoard(ctx context.Context, board *model.Board) error {
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}

	bKey := boardKey(board.MatchID, board.PlayerID)
	indexKey := boardsForMatchIndexKey(board.MatchID)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, bKey, data, s.cfg.BoardTTL)
	pipe.SAdd(ctx, indexKey, bKey)
	pipe.Expire(ctx, indexKey, s.cfg.BoardTTL) // Keep index TTL in sync
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetBoard(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.Board, error) {
	data, err := s.client.Get(ctx, boardKey(matchID, playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBoardNotFound
		}
		return nil, err
	}

	var board model.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) GetBoardsForMatch(ctx context.Context, matchID model.MatchID) ([]*model.Board, error) {
	indexKey := boardsForMatchIndexKey(matchID)

	// Get all board keys from the index
	boardKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(boardKeys) == 0 {
		return []*model.Board{}, nil
	}

	// Fetch all boards in one MGET
	values, err := s.client.MGet(ctx, boardKeys...).Result()
	if err != nil {
		return nil, err
	}

	boards := make([]*model.Board, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Board may have expired
		}
		var board model.Board
		if err := json.Unmarshal([]byte(val.(string)), &board); err != nil {
			continue // Skip invalid data
		}
		boards = append(boards, &board)
	}

	return boards, nil
}

func (s *Storage) DeleteBoardsForMatch(ctx context.Context, matchID model.MatchID) error {
	indexKey := boardsForMatchIndexKey(matchID)

	// Get all board keys from the index
	boardKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	if len(boardKeys) == 0 {
		return nil
	}

	// Delete all boards and the index in one pipeline
	pipe := s.client.Pipeline()
	for _, key := range boardKeys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}
