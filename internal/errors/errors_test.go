package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_Handle(t *testing.T) {
	h := NewHandler(testLogger(), false)

	tests := []struct {
		name      string
		err       error
		wantMsg   string
		wantRetry bool
	}{
		{name: "unauthorized", err: NewUnauthorizedError(7), wantMsg: "You don't have permission to do that."},
		{name: "wrapped database", err: NewDatabaseError(stderrors.New("conn refused")), wantMsg: "Temporary problem, please try again later.", wantRetry: true},
		{name: "plain error", err: stderrors.New("boom"), wantMsg: genericUserMessage},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			msg, retry := h.Handle(context.Background(), tc.err)
			assert.Equal(t, tc.wantMsg, msg)
			assert.Equal(t, tc.wantRetry, retry)
		})
	}

	msg, retry := h.Handle(context.Background(), nil)
	assert.Empty(t, msg)
	assert.False(t, retry)
}

func TestClassify(t *testing.T) {
	wrapped := fmt.Errorf("load order: %w", NewNotFoundError("Order", 5))
	assert.Equal(t, CodeNotFound, Classify(wrapped).Code)

	plain := stderrors.New("boom")
	internal := Classify(plain)
	assert.Equal(t, CodeInternal, internal.Code)
	assert.Equal(t, SeverityHigh, internal.Severity)
	assert.ErrorIs(t, internal, plain)
}

func TestAppError_IsMatchesCode(t *testing.T) {
	err := NewNotFoundError("Order", 5)
	assert.True(t, stderrors.Is(err, &AppError{Code: CodeNotFound}))
	assert.False(t, stderrors.Is(err, &AppError{Code: CodeUnauthorized}))
}

func TestWithRetry(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}

	attempts := 0
	err := WithRetry(context.Background(), policy, func(context.Context) error {
		attempts++
		if attempts < 3 {
			return NewDatabaseError(stderrors.New("not yet"))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	attempts = 0
	err = WithRetry(context.Background(), policy, func(context.Context) error {
		attempts++
		return NewValidationError("bad")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "non-retryable errors stop immediately")
}

func TestWithRetry_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, DefaultRetryPolicy, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	now := time.Unix(0, 0)
	var transitions []string
	cb := NewCircuitBreaker(BreakerSettings{
		ErrorThreshold:      0.5,
		MinRequests:         2,
		OpenTimeout:         time.Minute,
		HalfOpenMaxRequests: 1,
		OnStateChange: func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})
	cb.now = func() time.Time { return now }

	fail := func() error { return stderrors.New("telegram down") }
	ok := func() error { return nil }

	assert.Error(t, cb.Call(fail))
	assert.Error(t, cb.Call(fail))
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Call(ok), ErrCircuitOpen)

	now = now.Add(2 * time.Minute)
	require.NoError(t, cb.Call(ok))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []string{"closed->open", "open->closed"}, transitions)
}
