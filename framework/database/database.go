// Package database opens the site's backing stores with a bounded
// exponential-backoff retry around the first ping.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/km-arc/go-portfolio/framework/config"
)

// MaxElapsed bounds how long Retry keeps trying before giving up.
var MaxElapsed = 15 * time.Second

// Retry calls ping with exponential backoff until it succeeds, the context
// is cancelled or MaxElapsed passes. Each failed attempt is logged at warn.
func Retry(ctx context.Context, name string, logger *zap.Logger, ping func(context.Context) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = MaxElapsed

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := ping(ctx)
		if err != nil {
			logger.Warn("store not ready",
				zap.String("store", name),
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		return err
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return fmt.Errorf("%s: connect: %w", name, err)
	}
	logger.Info("store connected", zap.String("store", name), zap.Int("attempts", attempt))
	return nil
}

// Redis returns a client for cfg after a successful PING.
func Redis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	err := Retry(ctx, "redis", logger, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
