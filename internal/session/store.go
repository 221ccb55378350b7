// Package session is the single source of truth for "who is logged in".
// State lives in Redis keyed by the client's session cookie, so it survives
// gateway restarts and page reloads. The store is a pure state container: it
// never calls the booking API.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ethemkurtt/hotel-gateway/internal/domain"
)

// ErrNotFound means no session is stored for the key: the client is logged out.
var ErrNotFound = errors.New("session not found")

type Store interface {
	// Login replaces any existing session for sid unconditionally.
	Login(ctx context.Context, sid string, s *domain.Session) error
	// Logout clears the session; clearing an absent session is not an error.
	Logout(ctx context.Context, sid string) error
	Get(ctx context.Context, sid string) (*domain.Session, error)
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func key(sid string) string { return "session:" + sid }

func (r *redisStore) Login(ctx context.Context, sid string, s *domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(sid), data, r.ttl).Err()
}

func (r *redisStore) Logout(ctx context.Context, sid string) error {
	return r.client.Del(ctx, key(sid)).Err()
}

func (r *redisStore) Get(ctx context.Context, sid string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, key(sid)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s domain.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, err
	}
	return &s, nil
}
