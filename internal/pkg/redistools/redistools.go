package redistools

import (
	"context"
	"fmt"
	"time"

	"github.com/Leopold1975/blog_platform/internal/pkg/config"
	"github.com/redis/go-redis/v9"
)

const maxPingDelay = 10 * time.Second

// New builds a client for cfg and blocks until Redis is reachable.
func New(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{ //nolint:exhaustruct
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := Connect(ctx, rdb); err != nil {
		rdb.Close()

		return nil, fmt.Errorf("connect error: %w", err)
	}

	return rdb, nil
}

// Connect pings rdb until it answers, waiting one second longer after every
// failed attempt, and gives up once the delay exceeds ten seconds.
func Connect(ctx context.Context, rdb *redis.Client) error {
	delay := time.Second

	for {
		err := rdb.Ping(ctx).Err()
		if err == nil {
			return nil
		}

		if delay > maxPingDelay {
			return fmt.Errorf("cannot ping redis db error: %w", err)
		}

		t := time.NewTimer(delay)

		select {
		case <-ctx.Done():
			t.Stop()

			return fmt.Errorf("context error: %w", ctx.Err())
		case <-t.C:
		}

		delay += time.Second
	}
}
