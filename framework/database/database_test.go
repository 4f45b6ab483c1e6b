package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-portfolio/framework/config"
	"github.com/km-arc/go-portfolio/framework/database"
)

func TestRetry_EventuallySucceeds(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	calls := 0

	err := database.Retry(context.Background(), "fake", zap.New(core), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d want 3", calls)
	}
	if logs.Len() != 2 {
		t.Errorf("warnings: got %d want 2", logs.Len())
	}
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cause := errors.New("refused")
	err := database.Retry(ctx, "fake", nil, func(context.Context) error { return cause })
	if err == nil {
		t.Fatal("expected an error after cancel")
	}
}

func TestRedis_Unreachable(t *testing.T) {
	prev := database.MaxElapsed
	database.MaxElapsed = 200 * time.Millisecond
	t.Cleanup(func() { database.MaxElapsed = prev })

	_, err := database.Redis(context.Background(), config.RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
	}, nil)
	if err == nil {
		t.Fatal("expected connect error for a closed port")
	}
}
