package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/authgrid/auth_backend/internal/apperrors"
	"github.com/authgrid/auth_backend/internal/core/domain"
	portsrepo "github.com/authgrid/auth_backend/internal/core/ports/repositories"
	portssvc "github.com/authgrid/auth_backend/internal/core/ports/services"
	"github.com/authgrid/auth_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// VerifyEmailLogin validates an email/password pair against the stored
// email-provider user. Unknown email and wrong password collapse into the same
// ErrInvalidCredentials to prevent account enumeration.
func (s *userService) VerifyEmailLogin(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmailAndProvider(ctx, email, domain.ProviderEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user for email login: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// ResolveOAuthUser maps an external profile to a durable local user record.
// It attempts an insert keyed by (email, provider); on conflict the insert is
// a no-op and the existing row is read back. Two concurrent first logins for
// the same identity both resolve to the single surviving row.
func (s *userService) ResolveOAuthUser(ctx context.Context, profile domain.ExternalProfile) (*domain.User, error) {
	if profile.Email == "" {
		return nil, apperrors.ErrProfileIncomplete
	}

	user := domain.User{
		UserID:    uuid.NewString(),
		Name:      profile.Name,
		Email:     profile.Email,
		Provider:  profile.Provider,
		CreatedAt: time.Now(),
	}

	inserted, err := s.userRepo.CreateUserIfAbsent(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert oauth user: %w", err)
	}
	if inserted {
		return &user, nil
	}

	existing, err := s.userRepo.FindUserByEmailAndProvider(ctx, profile.Email, profile.Provider)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrResolution
		}
		return nil, fmt.Errorf("failed to read back oauth user after conflict: %w", err)
	}

	return existing, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}
