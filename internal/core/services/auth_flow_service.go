package services

import (
	"context"
	"fmt"

	"github.com/authgrid/auth_backend/internal/apperrors"
	"github.com/authgrid/auth_backend/internal/core/domain"
	portssvc "github.com/authgrid/auth_backend/internal/core/ports/services"
	"github.com/authgrid/auth_backend/internal/platform/config"
)

// authFlowService ties the provider strategies, account resolution and
// session issuance together into the per-provider login state machine.
type authFlowService struct {
	providers    map[domain.AuthProvider]portssvc.OAuthProviderSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthFlowService creates a new instance of authFlowService.
func NewAuthFlowService(
	providers map[domain.AuthProvider]portssvc.OAuthProviderSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) portssvc.AuthFlowSvcFacade {
	return &authFlowService{
		providers:    providers,
		userService:  userService,
		tokenService: tokenService,
	}
}

// NewOAuthProviders builds the closed set of provider strategies.
func NewOAuthProviders(cfg *config.Config) map[domain.AuthProvider]portssvc.OAuthProviderSvcFacade {
	return map[domain.AuthProvider]portssvc.OAuthProviderSvcFacade{
		domain.ProviderGoogle: NewGoogleOAuthService(cfg),
		domain.ProviderGitHub: NewGitHubOAuthService(cfg),
	}
}

func (s *authFlowService) BeginLogin(provider domain.AuthProvider) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", fmt.Errorf("unknown oauth provider %q: %w", provider, apperrors.ErrNotFound)
	}
	return p.AuthorizationURL(), nil
}

// CompleteLogin runs one callback attempt through the flow stages. No
// intermediate state is persisted, so an aborted attempt needs no cleanup;
// failures affect only this attempt.
func (s *authFlowService) CompleteLogin(ctx context.Context, provider domain.AuthProvider, code, errParam string) portssvc.CallbackResult {
	// An explicit error parameter means the user cancelled or denied consent
	// at the provider. That is a navigational outcome, not a server error.
	if errParam != "" {
		return portssvc.CallbackResult{
			State: portssvc.CallbackProviderDenied,
			Err:   fmt.Errorf("%w: %s", apperrors.ErrProviderDenied, errParam),
		}
	}

	if code == "" {
		return portssvc.CallbackResult{
			State: portssvc.CallbackMissingCode,
			Err:   apperrors.ErrMissingCode,
		}
	}

	p, ok := s.providers[provider]
	if !ok {
		return failed(portssvc.StageExchanging, fmt.Errorf("unknown oauth provider %q: %w", provider, apperrors.ErrNotFound))
	}

	token, err := p.ExchangeCode(ctx, code)
	if err != nil {
		return failed(portssvc.StageExchanging, err)
	}

	profile, err := p.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		return failed(portssvc.StageFetchingProfile, err)
	}

	user, err := s.userService.ResolveOAuthUser(ctx, *profile)
	if err != nil {
		return failed(portssvc.StageResolving, err)
	}

	sessionToken, err := s.tokenService.GenerateSessionToken(ctx, user.UserID)
	if err != nil {
		return failed(portssvc.StageIssuingSession, err)
	}

	return portssvc.CallbackResult{
		State:        portssvc.CallbackSessionIssued,
		User:         user,
		SessionToken: sessionToken,
	}
}

func failed(stage string, err error) portssvc.CallbackResult {
	return portssvc.CallbackResult{
		State: portssvc.CallbackFailed,
		Stage: stage,
		Err:   err,
	}
}
