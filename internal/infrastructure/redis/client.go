package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ConnectConfig controls how NewClient retries the initial ping.
type ConnectConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Logger          zerolog.Logger
}

// DefaultConnectConfig returns the retry settings used by the server.
func DefaultConnectConfig() ConnectConfig {
	return ConnectConfig{
		MaxRetries:      5,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxElapsedTime:  10 * time.Second,
		Logger:          zerolog.Nop(),
	}
}

// NewClient creates a new Redis client, retrying the ping with exponential backoff.
func NewClient(ctx context.Context, redisURL string, cfg ConnectConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval
	b.MaxElapsedTime = cfg.MaxElapsedTime

	attempt := 0
	err = backoff.Retry(func() error {
		err := client.Ping(ctx).Err()
		if err == nil {
			return nil
		}

		attempt++
		if attempt > cfg.MaxRetries {
			return backoff.Permanent(err)
		}

		cfg.Logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("redis ping failed, retrying")

		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
