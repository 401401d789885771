package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/authgrid/auth_backend/internal/apperrors"
	"github.com/authgrid/auth_backend/internal/core/domain"
	portssvc "github.com/authgrid/auth_backend/internal/core/ports/services"
	"github.com/authgrid/auth_backend/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleOAuthService implements the OAuthProviderSvcFacade for Google.
// Google's token endpoint takes a form-encoded body, which is exactly what
// oauth2.Config.Exchange produces, so the exchange goes through the library.
type googleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
	userInfoURL  string
	httpClient   *http.Client
}

// NewGoogleOAuthService creates a new Google OAuth provider strategy.
func NewGoogleOAuthService(cfg *config.Config) portssvc.OAuthProviderSvcFacade {
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.BackendBaseURL + "/auth/google/callback",
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
		httpClient:  http.DefaultClient,
	}
}

func (s *googleOAuthService) Name() domain.AuthProvider {
	return domain.ProviderGoogle
}

// AuthorizationURL builds the Google authorize URL. No state parameter is
// carried; the flow is stateless between redirect and callback.
func (s *googleOAuthService) AuthorizationURL() string {
	return s.oauth2Config.AuthCodeURL("")
}

// ExchangeCode exchanges an authorization code for a token result. When the
// response carries an ID token it is validated against the configured client
// id; a validation failure is the same failure class as a failed exchange.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.TokenResult, error) {
	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: google: %v", apperrors.ErrExchange, err)
	}

	result := &domain.TokenResult{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.Expiry,
	}
	if scope, ok := token.Extra("scope").(string); ok {
		result.Scope = scope
	}
	if idTokenString, ok := token.Extra("id_token").(string); ok && idTokenString != "" {
		if _, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID); err != nil {
			return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrExchange, err)
		}
		result.IDToken = idTokenString
	}

	return result, nil
}

// FetchProfile retrieves the user's profile from the userinfo endpoint with a
// bearer-token authorization header.
func (s *googleOAuthService) FetchProfile(ctx context.Context, accessToken string) (*domain.ExternalProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google userinfo returned status %d: %s", resp.StatusCode, string(body))
	}

	var userInfo struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		Name          string `json:"name"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}

	if userInfo.Email == "" {
		return nil, fmt.Errorf("%w: google profile omitted email", apperrors.ErrProfileIncomplete)
	}

	name := userInfo.Name
	if name == "" {
		name = userInfo.Email
	}

	return &domain.ExternalProfile{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: userInfo.ID,
		Email:          userInfo.Email,
		Name:           name,
	}, nil
}
