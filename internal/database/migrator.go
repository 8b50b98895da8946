// Package database owns the schema and applies its migrations.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsRoot = "migrations"

// Migrator applies the embedded migrations with golang-migrate.
type Migrator struct {
	db  *sql.DB
	log *slog.Logger
}

// NewMigrator constructs a Migrator that logs through the provided logger instance.
func NewMigrator(db *sql.DB, log *slog.Logger) *Migrator {
	if log == nil {
		log = slog.Default()
	}

	return &Migrator{
		db:  db,
		log: log.With(slog.String("component", "migrator")),
	}
}

// Up applies every pending up migration. An up-to-date schema is not an error.
func (m *Migrator) Up() error {
	source, err := iofs.New(migrationFiles, migrationsRoot)
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("init migrate driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	fromVer, _, _ := mig.Version()

	start := time.Now()
	upErr := mig.Up()
	took := time.Since(start)

	switch {
	case upErr == nil:
	case errors.Is(upErr, migrate.ErrNoChange):
		m.log.Info("schema up to date", slog.Uint64("version", uint64(fromVer)))
		return nil
	default:
		m.log.Error("migration failed", slog.Any("error", upErr), slog.Duration("duration", took))
		return fmt.Errorf("apply migrations: %w", upErr)
	}

	toVer, dirty, _ := mig.Version()
	m.log.Info("migrations applied",
		slog.Uint64("from_ver", uint64(fromVer)),
		slog.Uint64("to_ver", uint64(toVer)),
		slog.Bool("dirty", dirty),
		slog.Duration("duration", took),
	)

	return nil
}

// ListMigrations returns the embedded .up.sql files in lexical order.
func ListMigrations() ([]string, error) {
	entries, err := fs.ReadDir(migrationFiles, migrationsRoot)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}
