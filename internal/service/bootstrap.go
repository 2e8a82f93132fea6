package service

import (
	"context"
	"log/slog"

	"github.com/idoevents/api/internal/model"
)

// AdminSeed holds the identity of the default administrator account
type AdminSeed struct {
	Username string
	Password string
	Name     string
}

// EnsureDefaultAdmin creates the default administrator account if it does
// not exist yet. The check-then-create is idempotent across restarts.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, seed AdminSeed) error {
	existing, err := s.userRepo.GetByUsername(ctx, seed.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := hashPassword(seed.Password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username: seed.Username,
		Hash:     &hash,
		Name:     seed.Name,
		Role:     model.UserRoleAdmin,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("default admin account created", slog.String("username", seed.Username))
	return nil
}
