package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Proton-105/warung-bot/internal/domain"
	"github.com/Proton-105/warung-bot/internal/repository"
)

// Profile is the Telegram identity of a caller.
type Profile struct {
	TelegramID int64
	FirstName  string
	LastName   string
	Username   string
}

// Service provides business operations over users.
type Service struct {
	repo repository.UserRepository
	log  *slog.Logger
}

// NewService constructs a new Service instance.
func NewService(repo repository.UserRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log}
}

// Find returns the user with telegramID, or repository.ErrNotFound.
func (s *Service) Find(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.repo.FindUserByTelegramID(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logError("find", telegramID, err)
		}
		return nil, err
	}

	return user, nil
}

// IsAdmin resolves the caller on every call so role changes apply to already rendered buttons.
// A caller with no user record is not an admin.
func (s *Service) IsAdmin(ctx context.Context, telegramID int64) (bool, error) {
	user, err := s.Find(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolve role: %w", err)
	}

	return user.IsAdmin(), nil
}

// GetOrCreate fetches a user by telegram ID or creates a customer profile when missing.
func (s *Service) GetOrCreate(ctx context.Context, profile Profile) (*domain.User, error) {
	user, err := s.repo.FindUserByTelegramID(ctx, profile.TelegramID)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, repository.ErrNotFound) {
		s.logError("get_or_create.find", profile.TelegramID, err)
		return nil, fmt.Errorf("get user: %w", err)
	}

	newUser := &domain.User{
		TelegramID: profile.TelegramID,
		FirstName:  orUnknown(profile.FirstName),
		LastName:   profile.LastName,
		Username:   orUnknown(profile.Username),
		Role:       domain.RoleCustomer,
	}

	if err := s.repo.CreateUser(ctx, newUser); err != nil {
		s.logError("get_or_create.create", profile.TelegramID, err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("customer registered", slog.Int64("telegram_id", newUser.TelegramID))
	return newUser, nil
}

// EnsureSuperAdmin makes sure telegramID exists with the admin role. Zero disables provisioning.
func (s *Service) EnsureSuperAdmin(ctx context.Context, telegramID int64) error {
	if telegramID == 0 {
		s.log.Warn("super admin id not configured, admin commands are unreachable until a user is promoted")
		return nil
	}

	user, err := s.repo.FindUserByTelegramID(ctx, telegramID)
	switch {
	case err == nil:
		if user.IsAdmin() {
			return nil
		}
		user.Role = domain.RoleAdmin
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			s.logError("ensure_super_admin.promote", telegramID, err)
			return fmt.Errorf("promote super admin: %w", err)
		}
		s.log.Info("super admin promoted", slog.Int64("telegram_id", telegramID))
		return nil

	case errors.Is(err, repository.ErrNotFound):
		admin := &domain.User{
			TelegramID: telegramID,
			FirstName:  "Super",
			LastName:   "Admin",
			Username:   "superadmin",
			Role:       domain.RoleAdmin,
		}
		if err := s.repo.CreateUser(ctx, admin); err != nil {
			s.logError("ensure_super_admin.create", telegramID, err)
			return fmt.Errorf("create super admin: %w", err)
		}
		s.log.Info("super admin created", slog.Int64("telegram_id", telegramID))
		return nil

	default:
		s.logError("ensure_super_admin.find", telegramID, err)
		return fmt.Errorf("find super admin: %w", err)
	}
}

func orUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}

func (s *Service) logError(operation string, telegramID int64, err error) {
	if s == nil || s.log == nil || err == nil {
		return
	}

	s.log.Error("user service operation failed",
		slog.String("operation", operation),
		slog.Int64("telegram_id", telegramID),
		slog.Any("error", err),
	)
}
