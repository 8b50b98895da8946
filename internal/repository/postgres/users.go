package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Proton-105/warung-bot/internal/domain"
	"github.com/Proton-105/warung-bot/internal/repository"
)

// FindUserByTelegramID retrieves a user by their Telegram identifier.
func (s *Store) FindUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	const query = `
		SELECT id, telegram_id, first_name, last_name, username, role, created_at
		FROM users
		WHERE telegram_id = $1
	`

	var user domain.User
	if err := s.db.GetContext(ctx, &user, query, telegramID); err != nil {
		err = notFound(err)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		s.log.Error("failed to fetch user by telegram id", slog.Int64("telegram_id", telegramID), slog.Any("error", err))
		return nil, fmt.Errorf("select user by telegram id: %w", err)
	}

	return &user, nil
}

// CreateUser persists a new user record and fills in its id and creation time.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `
		INSERT INTO users (telegram_id, first_name, last_name, username, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := s.db.QueryRowxContext(
		ctx,
		query,
		user.TelegramID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		s.log.Error("failed to create user", slog.Int64("telegram_id", user.TelegramID), slog.Any("error", err))
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// UpdateUser overwrites the mutable profile fields and role of a user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	const query = `
		UPDATE users
		SET first_name = $2, last_name = $3, username = $4, role = $5
		WHERE telegram_id = $1
	`

	res, err := s.db.ExecContext(ctx, query, user.TelegramID, user.FirstName, user.LastName, user.Username, user.Role)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return affected(res)
}
