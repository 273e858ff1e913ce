package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	errs "github.com/jrsteele09/go-login-broker/internal/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session"

// RedisStore backs sessions with Redis so multiple broker instances can
// share one session space. Expiry is delegated to Redis TTLs.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed session store on an existing client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: redisKeyPrefix,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

// Set stores the JSON-encoded session under the prefixed key with the
// given TTL.
func (s *RedisStore) Set(ctx context.Context, id string, session Session, ttl time.Duration) error {
	if id == "" {
		return errs.Wrapf(errs.ErrSessionNotFound, "sessionID is required")
	}

	encoded, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(id), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get retrieves a session by ID. A missing or expired key maps to
// ErrSessionNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, errs.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, errs.ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("redis get: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
