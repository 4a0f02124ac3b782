package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/promptduel/promptduel-go/internal/model"
	"github.com/promptduel/promptduel-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Sessions are JSON values; turns are JSON entries in a per
// (session, player, phase) list, so ordering and counts come straight from
// the list structure.
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

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(session.ID), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	indexKey := turnsForSessionIndexKey(id)

	turnKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	for _, key := range turnKeys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Turn operations

func (s *Storage) SaveTurn(ctx context.Context, turn *model.Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}

	tKey := turnsKey(turn.SessionID, turn.PlayerID, turn.Phase)
	indexKey := turnsForSessionIndexKey(turn.SessionID)

	// Pipeline the append + index update and keep TTLs in sync
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, tKey, data)
	pipe.Expire(ctx, tKey, s.cfg.SessionTTL)
	pipe.SAdd(ctx, indexKey, tKey)
	pipe.Expire(ctx, indexKey, s.cfg.SessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTurns(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, phase model.Phase) ([]*model.Turn, error) {
	values, err := s.client.LRange(ctx, turnsKey(sessionID, playerID, phase), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	turns := make([]*model.Turn, 0, len(values))
	for _, val := range values {
		var turn model.Turn
		if err := json.Unmarshal([]byte(val), &turn); err != nil {
			return nil, err
		}
		turns = append(turns, &turn)
	}
	return turns, nil
}

func (s *Storage) CountTurns(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, phase model.Phase) (int, error) {
	count, err := s.client.LLen(ctx, turnsKey(sessionID, playerID, phase)).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
