package lifecycle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestShutdown_RunsNewestFirst(t *testing.T) {
	s := NewShutdown(testLogger())

	var order []string
	for _, name := range []string{"postgres", "redis", "bot"} {
		name := name
		s.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"bot", "redis", "postgres"}, order)

	order = nil
	require.NoError(t, s.Execute(context.Background()))
	assert.Empty(t, order, "hooks run once")
}

func TestShutdown_CollectsErrors(t *testing.T) {
	s := NewShutdown(testLogger())
	boom := errors.New("boom")

	ran := false
	s.Register("db", func(context.Context) error { ran = true; return nil })
	s.Register("http", func(context.Context) error { return boom })

	err := s.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, ran)
}

func TestShutdown_SkipsAfterDeadline(t *testing.T) {
	s := NewShutdown(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	ran := false
	s.Register("db", func(context.Context) error { ran = true; return nil })
	s.Register("bot", func(context.Context) error { cancel(); return nil })

	err := s.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

type readiness struct{ err error }

func (r readiness) Ready(context.Context) error { return r.err }

func TestProbes(t *testing.T) {
	p := NewProbes(readiness{}, testLogger())
	assert.NoError(t, p.Liveness(context.Background()))
	assert.NoError(t, p.Readiness(context.Background()))

	p.Drain()
	assert.ErrorIs(t, p.Readiness(context.Background()), ErrDraining)
	assert.NoError(t, p.Liveness(context.Background()))

	down := errors.New("postgres: down")
	assert.ErrorIs(t, NewProbes(readiness{err: down}, testLogger()).Readiness(context.Background()), down)
}
