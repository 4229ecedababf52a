package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetTokenStore holds password-reset tokens in Redis with a TTL, so
// tokens survive process restarts and expire without cleanup code.
type ResetTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResetTokenStore(client *redis.Client, ttl time.Duration) *ResetTokenStore {
	return &ResetTokenStore{client: client, ttl: ttl}
}

func (s *ResetTokenStore) key(email string) string {
	return "reset:token:" + email
}

// Set stores the token for email, replacing any previous one.
func (s *ResetTokenStore) Set(ctx context.Context, email, token string) error {
	return s.client.Set(ctx, s.key(email), token, s.ttl).Err()
}

// Get returns the stored token, or "" when none exists or it has expired.
func (s *ResetTokenStore) Get(ctx context.Context, email string) (string, error) {
	val, err := s.client.Get(ctx, s.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Delete removes the token once consumed.
func (s *ResetTokenStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}
