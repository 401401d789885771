package services

import (
	"context"

	"github.com/authgrid/auth_backend/internal/core/domain"
)

// UserSvcFacade defines the user-facing operations needed by auth handlers.
type UserSvcFacade interface {
	// VerifyEmailLogin checks an email/password pair against the stored
	// email-provider user. Both an unknown email and a wrong password yield
	// apperrors.ErrInvalidCredentials, with no distinction.
	VerifyEmailLogin(ctx context.Context, email, password string) (*domain.User, error)

	// ResolveOAuthUser maps an external profile to a durable local user,
	// creating one if absent. Concurrent first logins for the same identity
	// converge on a single row.
	ResolveOAuthUser(ctx context.Context, profile domain.ExternalProfile) (*domain.User, error)

	// GetUserByID fetches a user by id, or apperrors.ErrNotFound.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// TokenSvcFacade mints session credentials.
type TokenSvcFacade interface {
	// GenerateSessionToken produces an opaque signed token binding the user id.
	GenerateSessionToken(ctx context.Context, userID string) (string, error)
}

// OAuthProviderSvcFacade is implemented once per external provider. It drives
// the two-leg authorization-code flow: code-to-token, then token-to-profile.
type OAuthProviderSvcFacade interface {
	Name() domain.AuthProvider

	// AuthorizationURL builds the provider's authorize endpoint URL with
	// client id, redirect URI, scopes and response_type=code.
	AuthorizationURL() string

	// ExchangeCode exchanges an authorization code for a token result.
	// Failures, including inline error fields in 2xx payloads, are reported
	// as apperrors.ErrExchange.
	ExchangeCode(ctx context.Context, code string) (*domain.TokenResult, error)

	// FetchProfile retrieves the normalized external profile using a bearer
	// access token. A profile without a usable email is reported as
	// apperrors.ErrProfileIncomplete.
	FetchProfile(ctx context.Context, accessToken string) (*domain.ExternalProfile, error)
}
