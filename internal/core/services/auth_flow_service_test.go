package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/authgrid/auth_backend/internal/apperrors"
	"github.com/authgrid/auth_backend/internal/core/domain"
	portssvc "github.com/authgrid/auth_backend/internal/core/ports/services"
	"github.com/authgrid/auth_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Stub provider ---
type stubProvider struct {
	name         domain.AuthProvider
	authorizeURL string
	exchangeErr  error
	token        *domain.TokenResult
	profileErr   error
	profile      *domain.ExternalProfile
}

func (p *stubProvider) Name() domain.AuthProvider { return p.name }
func (p *stubProvider) AuthorizationURL() string  { return p.authorizeURL }
func (p *stubProvider) ExchangeCode(ctx context.Context, code string) (*domain.TokenResult, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return p.token, nil
}
func (p *stubProvider) FetchProfile(ctx context.Context, accessToken string) (*domain.ExternalProfile, error) {
	if p.profileErr != nil {
		return nil, p.profileErr
	}
	return p.profile, nil
}

// --- Stub user service ---
type stubUserService struct {
	resolveErr  error
	resolved    *domain.User
	resolveCall int
}

func (s *stubUserService) VerifyEmailLogin(ctx context.Context, email, password string) (*domain.User, error) {
	return nil, apperrors.ErrInvalidCredentials
}
func (s *stubUserService) ResolveOAuthUser(ctx context.Context, profile domain.ExternalProfile) (*domain.User, error) {
	s.resolveCall++
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	return s.resolved, nil
}
func (s *stubUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return nil, apperrors.ErrNotFound
}

// --- Stub token service ---
type stubTokenService struct {
	token string
	err   error
}

func (s *stubTokenService) GenerateSessionToken(ctx context.Context, userID string) (string, error) {
	return s.token, s.err
}

func newFlow(p *stubProvider, us *stubUserService, ts *stubTokenService) portssvc.AuthFlowSvcFacade {
	providers := map[domain.AuthProvider]portssvc.OAuthProviderSvcFacade{
		p.name: p,
	}
	return services.NewAuthFlowService(providers, us, ts)
}

func happyProvider() *stubProvider {
	return &stubProvider{
		name:         domain.ProviderGoogle,
		authorizeURL: "https://accounts.example.com/authorize",
		token:        &domain.TokenResult{AccessToken: "access-token"},
		profile: &domain.ExternalProfile{
			Provider: domain.ProviderGoogle,
			Email:    "user@example.com",
			Name:     "User",
		},
	}
}

func TestBeginLogin(t *testing.T) {
	flow := newFlow(happyProvider(), &stubUserService{}, &stubTokenService{})

	url, err := flow.BeginLogin(domain.ProviderGoogle)
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example.com/authorize", url)

	_, err = flow.BeginLogin(domain.ProviderGitHub)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCompleteLogin_Success(t *testing.T) {
	us := &stubUserService{resolved: &domain.User{UserID: "user-1", Email: "user@example.com"}}
	ts := &stubTokenService{token: "signed-session"}
	flow := newFlow(happyProvider(), us, ts)

	result := flow.CompleteLogin(context.Background(), domain.ProviderGoogle, "the-code", "")

	assert.Equal(t, portssvc.CallbackSessionIssued, result.State)
	assert.Equal(t, "user-1", result.User.UserID)
	assert.Equal(t, "signed-session", result.SessionToken)
	assert.NoError(t, result.Err)
}

func TestCompleteLogin_ProviderDenied(t *testing.T) {
	us := &stubUserService{}
	flow := newFlow(happyProvider(), us, &stubTokenService{})

	result := flow.CompleteLogin(context.Background(), domain.ProviderGoogle, "", "access_denied")

	assert.Equal(t, portssvc.CallbackProviderDenied, result.State)
	assert.ErrorIs(t, result.Err, apperrors.ErrProviderDenied)
	// No user row may be touched for a denial.
	assert.Zero(t, us.resolveCall)
}

func TestCompleteLogin_MissingCode(t *testing.T) {
	flow := newFlow(happyProvider(), &stubUserService{}, &stubTokenService{})

	result := flow.CompleteLogin(context.Background(), domain.ProviderGoogle, "", "")

	assert.Equal(t, portssvc.CallbackMissingCode, result.State)
	assert.ErrorIs(t, result.Err, apperrors.ErrMissingCode)
}

func TestCompleteLogin_ExchangeFailureAbortsFlow(t *testing.T) {
	p := happyProvider()
	p.exchangeErr = apperrors.ErrExchange
	us := &stubUserService{}
	flow := newFlow(p, us, &stubTokenService{})

	result := flow.CompleteLogin(context.Background(), domain.ProviderGoogle, "bad-code", "")

	assert.Equal(t, portssvc.CallbackFailed, result.State)
	assert.Equal(t, portssvc.StageExchanging, result.Stage)
	assert.ErrorIs(t, result.Err, apperrors.ErrExchange)
	assert.Zero(t, us.resolveCall)
}

func TestCompleteLogin_ProfileIncomplete(t *testing.T) {
	p := happyProvider()
	p.profileErr = apperrors.ErrProfileIncomplete
	us := &stubUserService{}
	flow := newFlow(p, us, &stubTokenService{})

	result := flow.CompleteLogin(context.Background(), domain.ProviderGoogle, "the-code", "")

	assert.Equal(t, portssvc.CallbackFailed, result.State)
	assert.Equal(t, portssvc.StageFetchingProfile, result.Stage)
	assert.ErrorIs(t, result.Err, apperrors.ErrProfileIncomplete)
	assert.Zero(t, us.resolveCall)
}

func TestCompleteLogin_ResolutionFailure(t *testing.T) {
	us := &stubUserService{resolveErr: apperrors.ErrResolution}
	flow := newFlow(happyProvider(), us, &stubTokenService{})

	result := flow.CompleteLogin(context.Background(), domain.ProviderGoogle, "the-code", "")

	assert.Equal(t, portssvc.CallbackFailed, result.State)
	assert.Equal(t, portssvc.StageResolving, result.Stage)
	assert.ErrorIs(t, result.Err, apperrors.ErrResolution)
}

func TestCompleteLogin_SessionIssuanceFailure(t *testing.T) {
	us := &stubUserService{resolved: &domain.User{UserID: "user-1"}}
	ts := &stubTokenService{err: errors.New("hmac failure")}
	flow := newFlow(happyProvider(), us, ts)

	result := flow.CompleteLogin(context.Background(), domain.ProviderGoogle, "the-code", "")

	assert.Equal(t, portssvc.CallbackFailed, result.State)
	assert.Equal(t, portssvc.StageIssuingSession, result.Stage)
}
