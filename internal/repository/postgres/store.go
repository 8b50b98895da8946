// Package postgres implements repository.Store on PostgreSQL using sqlx.
package postgres

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/Proton-105/warung-bot/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store is the PostgreSQL record store.
type Store struct {
	db  *sqlx.DB
	log *slog.Logger
}

// New creates a Store over an open sqlx handle.
func New(db *sqlx.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}

	return &Store{db: db, log: log}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
