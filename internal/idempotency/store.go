package idempotency

import (
	"context"
	"time"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// Store records which update keys have been claimed.
type Store interface {
	// Claim marks key as processing for ttl. It reports false when the key already exists.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Status returns the recorded status of key, or "" when absent.
	Status(ctx context.Context, key string) (string, error)
	// Complete marks key as completed for ttl.
	Complete(ctx context.Context, key string, ttl time.Duration) error
	// Release forgets key so the update can be processed again.
	Release(ctx context.Context, key string) error
}
