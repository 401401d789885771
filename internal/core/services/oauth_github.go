package services

import (
	"bytes"
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
	githuboauth "golang.org/x/oauth2/github"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// githubOAuthService implements the OAuthProviderSvcFacade for GitHub.
// The exchange bypasses oauth2.Config.Exchange: GitHub's token endpoint is
// sent a JSON body with an explicit Accept: application/json header, since it
// otherwise defaults to form-encoded responses. GitHub is also inconsistent
// about status codes, reporting some failures as an inline error field in a
// 200 payload, so both shapes collapse into the same exchange failure.
type githubOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
	tokenURL     string
	userURL      string
	emailsURL    string
	httpClient   *http.Client
}

// NewGitHubOAuthService creates a new GitHub OAuth provider strategy.
func NewGitHubOAuthService(cfg *config.Config) portssvc.OAuthProviderSvcFacade {
	return &githubOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.BackendBaseURL + "/auth/github/callback",
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
		tokenURL:   githuboauth.Endpoint.TokenURL,
		userURL:    githubUserURL,
		emailsURL:  githubEmailsURL,
		httpClient: http.DefaultClient,
	}
}

func (s *githubOAuthService) Name() domain.AuthProvider {
	return domain.ProviderGitHub
}

// AuthorizationURL builds the GitHub authorize URL, forcing the account
// chooser so users with multiple GitHub accounts pick one explicitly.
func (s *githubOAuthService) AuthorizationURL() string {
	return s.oauth2Config.AuthCodeURL("", oauth2.SetAuthURLParam("prompt", "select_account"))
}

// ExchangeCode exchanges an authorization code for an access token.
func (s *githubOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.TokenResult, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     s.oauth2Config.ClientID,
		"client_secret": s.oauth2Config.ClientSecret,
		"code":          code,
		"redirect_uri":  s.oauth2Config.RedirectURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode token exchange payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create token exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: github: %v", apperrors.ErrExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: github token endpoint returned status %d: %s", apperrors.ErrExchange, resp.StatusCode, string(body))
	}

	var tokenResponse struct {
		AccessToken      string `json:"access_token"`
		TokenType        string `json:"token_type"`
		Scope            string `json:"scope"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return nil, fmt.Errorf("%w: failed to decode github token response: %v", apperrors.ErrExchange, err)
	}

	// GitHub reports e.g. bad_verification_code as an error field in a 200.
	if tokenResponse.Error != "" {
		return nil, fmt.Errorf("%w: github: %s: %s", apperrors.ErrExchange, tokenResponse.Error, tokenResponse.ErrorDescription)
	}
	if tokenResponse.AccessToken == "" {
		return nil, fmt.Errorf("%w: github token response missing access_token", apperrors.ErrExchange)
	}

	return &domain.TokenResult{
		AccessToken: tokenResponse.AccessToken,
		TokenType:   tokenResponse.TokenType,
		Scope:       tokenResponse.Scope,
	}, nil
}

// FetchProfile retrieves the user's profile. GitHub allows the account email
// to be private, in which case the primary profile response omits it and the
// email-list endpoint is consulted for a verified primary address.
func (s *githubOAuthService) FetchProfile(ctx context.Context, accessToken string) (*domain.ExternalProfile, error) {
	var githubUser struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := s.getJSON(ctx, s.userURL, accessToken, &githubUser); err != nil {
		return nil, fmt.Errorf("failed to get user from github: %w", err)
	}

	email := githubUser.Email
	if email == "" {
		primary, err := s.fetchPrimaryEmail(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		email = primary
	}

	name := githubUser.Name
	if name == "" {
		name = githubUser.Login
	}

	return &domain.ExternalProfile{
		Provider:       domain.ProviderGitHub,
		ProviderUserID: fmt.Sprintf("%d", githubUser.ID),
		Email:          email,
		Name:           name,
	}, nil
}

// fetchPrimaryEmail selects the verified primary entry from the email-list
// endpoint. Without one the account cannot be provisioned.
func (s *githubOAuthService) fetchPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := s.getJSON(ctx, s.emailsURL, accessToken, &emails); err != nil {
		return "", fmt.Errorf("failed to get emails from github: %w", err)
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}

	return "", fmt.Errorf("%w: github account has no verified primary email", apperrors.ErrProfileIncomplete)
}

func (s *githubOAuthService) getJSON(ctx context.Context, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github api returned status %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
