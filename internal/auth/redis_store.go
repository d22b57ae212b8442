package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements SessionStore and ResetTokenStore on Redis.
// Sessions are stored as JSON under "session:<userID>" with TTL = expiresAt - now;
// reset tokens under "pwreset:<token>" holding the user id.
type RedisStore struct {
	client        *redis.Client
	sessionPrefix string
	resetPrefix   string
}

// NewRedisStore creates a Redis-backed session and reset-token store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:        client,
		sessionPrefix: "session:",
		resetPrefix:   "pwreset:",
	}
}

var (
	_ SessionStore    = (*RedisStore)(nil)
	_ ResetTokenStore = (*RedisStore)(nil)
)

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	exp := time.Until(s.ExpiresAt)
	if exp <= 0 {
		// ensure a minimal TTL so Redis won't store expired sessions
		exp = time.Second
	}
	return r.client.Set(ctx, r.sessionPrefix+s.UserID, b, exp).Err()
}

func (r *RedisStore) Get(ctx context.Context, userID string) (*Session, error) {
	b, err := r.client.Get(ctx, r.sessionPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	// If the stored value has outlived its own expiry, treat it as missing.
	if time.Now().UTC().After(s.ExpiresAt) {
		_ = r.client.Del(ctx, r.sessionPrefix+userID).Err()
		return nil, nil
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.sessionPrefix+userID).Err()
}

func (r *RedisStore) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	return r.client.Set(ctx, r.resetPrefix+token, userID, ttl).Err()
}

func (r *RedisStore) Consume(ctx context.Context, token string) (string, error) {
	key := r.resetPrefix + token
	userID, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return "", err
	}
	return userID, nil
}
