// Package session implements the server-side session store. A session is an
// opaque association between a browser and a customer identity; the record
// lives in Redis under a random session ID with a TTL, so logout (or expiry)
// revokes the browser token regardless of its own lifetime.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Identity is what a session resolves to: the two identity keys every
// authenticated operation needs.
type Identity struct {
	Username   string `json:"username"`
	CustomerID string `json:"customer_id"`
}

// Store is the session contract consumed by middleware and the auth
// handlers: install, resolve and revoke an identity under a session ID.
type Store interface {
	Set(ctx context.Context, sessionID string, id Identity, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (Identity, error)
	Clear(ctx context.Context, sessionID string) error
}

// ErrNotFound is returned when a session ID has no record, either because
// it never existed, expired, or was cleared by logout.
var ErrNotFound = errors.New("session not found")

// RedisStore keeps session records in Redis as JSON values with a TTL.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore constructs a RedisStore around an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func key(sessionID string) string { return "sess:" + sessionID }

// Set installs or refreshes a session record.
func (s *RedisStore) Set(ctx context.Context, sessionID string, id Identity, ttl time.Duration) error {
	b, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(sessionID), b, ttl).Err()
}

// Get resolves a session ID to its identity.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (Identity, error) {
	b, err := s.rdb.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, ErrNotFound
		}
		return Identity{}, err
	}
	var id Identity
	if err := json.Unmarshal(b, &id); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Clear revokes a session.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, key(sessionID)).Err()
}
