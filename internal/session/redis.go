package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/career-compass/internal/types"
)

const (
	keyPrefix       = "session:"
	maxWatchRetries = 5
)

// RedisOptions configures a Redis connection.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// NewRedisClient opens a Redis client and checks the connection.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Address,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// RedisStore keeps sessions as JSON values with a sliding TTL. Updates run
// in a WATCH transaction so concurrent writers to one session serialize.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. A non-positive ttl uses DefaultTTL.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

// Create stores a new session. An existing id is an error.
func (r *RedisStore) Create(ctx context.Context, s *types.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	ok, err := r.client.SetNX(ctx, sessionKey(s.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create session %s: %w", s.ID, err)
	}
	if !ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	return nil
}

// Get loads a session.
func (r *RedisStore) Get(ctx context.Context, id string) (*types.Session, error) {
	return r.load(ctx, r.client, id)
}

// UpdateAnswers applies fn atomically.
func (r *RedisStore) UpdateAnswers(ctx context.Context, id string, fn Mutator) (*types.Session, error) {
	return r.update(ctx, id, fn)
}

// MarkComplete applies fn atomically; fn must leave the session completed.
func (r *RedisStore) MarkComplete(ctx context.Context, id string, fn Mutator) (*types.Session, error) {
	return r.update(ctx, id, completing(fn))
}

func (r *RedisStore) update(ctx context.Context, id string, fn Mutator) (*types.Session, error) {
	key := sessionKey(id)
	var result *types.Session

	txf := func(tx *redis.Tx) error {
		s, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err == nil {
			result = s
		}
		return err
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("session %s: too much contention after %d attempts", id, maxWatchRetries)
}

func (r *RedisStore) load(ctx context.Context, c redis.Cmdable, id string) (*types.Session, error) {
	data, err := c.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	var s types.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	if s.Answers == nil {
		s.Answers = types.Responses{}
	}
	return &s, nil
}
