package idempotency

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var (
	ErrRequestInProgress = errors.New("request with this key is already in progress")
	ErrAlreadyProcessed  = errors.New("request with this key was already processed")
)

type Operation func(ctx context.Context) error

type Manager interface {
	// Execute runs fn once per key within ttl. Duplicates get ErrRequestInProgress or ErrAlreadyProcessed.
	Execute(ctx context.Context, key string, ttl time.Duration, fn Operation) error
}

type manager struct {
	store Store
	log   *slog.Logger
}

func NewManager(store Store, log *slog.Logger) Manager {
	if log == nil {
		log = slog.Default()
	}

	return &manager{
		store: store,
		log:   log,
	}
}

func (m *manager) Execute(ctx context.Context, key string, ttl time.Duration, fn Operation) error {
	if fn == nil {
		return errors.New("operation fn cannot be nil")
	}

	claimed, err := m.store.Claim(ctx, key, ttl)
	if err != nil {
		// the store being down must not stop the bot
		m.log.Warn("idempotency store unavailable, running without dedup", slog.String("key", key), slog.Any("error", err))
		return fn(ctx)
	}

	if !claimed {
		status, err := m.store.Status(ctx, key)
		if err != nil {
			return err
		}
		if status == StatusCompleted {
			return ErrAlreadyProcessed
		}
		return ErrRequestInProgress
	}

	if err := fn(ctx); err != nil {
		if releaseErr := m.store.Release(ctx, key); releaseErr != nil {
			m.log.Warn("failed to release idempotency key", slog.String("key", key), slog.Any("error", releaseErr))
		}
		return err
	}

	return m.store.Complete(ctx, key, ttl)
}
