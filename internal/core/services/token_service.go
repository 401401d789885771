package services

import (
	"context"

	portssvc "github.com/authgrid/auth_backend/internal/core/ports/services"
	"github.com/authgrid/auth_backend/internal/platform/config"
	"github.com/authgrid/auth_backend/internal/utils"
)

const sessionTokenIssuer = "auth-backend"

// tokenService implements the TokenSvcFacade for minting session tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateSessionToken creates a signed session JWT binding the user id.
// There is no server-side session store; invalidation is purely time and
// signature based.
func (s *tokenService) GenerateSessionToken(ctx context.Context, userID string) (string, error) {
	return utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.SessionExpiryDuration, sessionTokenIssuer)
}
