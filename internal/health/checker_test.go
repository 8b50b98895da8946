package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChecker_Check(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	checker := NewChecker(testLogger())
	checker.AddCheck("postgres", NewDBChecker(db))
	checker.AddCheck("redis", NewRedisChecker(client))
	checker.AddCheck("telegram", NewTelegramChecker(nil))

	results := checker.Check(context.Background())
	assert.Equal(t, "OK", results["postgres"])
	assert.Equal(t, "OK", results["redis"])
	assert.NotEqual(t, "OK", results["telegram"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChecker_Ready(t *testing.T) {
	checker := NewChecker(testLogger())
	checker.AddCheck("ok", CheckFunc(func(context.Context) error { return nil }))
	assert.NoError(t, checker.Ready(context.Background()))

	checker.AddCheck("redis", CheckFunc(func(context.Context) error { return errors.New("connection refused") }))
	err := checker.Ready(context.Background())
	require.Error(t, err)
	assert.Equal(t, "redis: connection refused", err.Error())
}

func TestRedisChecker_Down(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	assert.Error(t, NewRedisChecker(client).HealthCheck(context.Background()))
}
