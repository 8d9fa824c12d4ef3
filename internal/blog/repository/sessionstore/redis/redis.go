package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore remembers revoked token ids until the tokens would have
// expired on their own.
type SessionStore struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) SessionStore {
	return SessionStore{rdb: rdb}
}

func (ss SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := ss.rdb.Set(ctx, key(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("set error: %w", err)
	}

	return nil
}

func (ss SessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := ss.rdb.Get(ctx, key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("get error: %w", err)
	}

	return true, nil
}

func (ss SessionStore) Shutdown(_ context.Context) error {
	if err := ss.rdb.Close(); err != nil {
		return fmt.Errorf("close error: %w", err)
	}

	return nil
}

func key(tokenID string) string {
	return "revoked:" + tokenID
}
