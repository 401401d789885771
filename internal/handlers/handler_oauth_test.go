package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/authgrid/auth_backend/internal/apperrors"
	"github.com/authgrid/auth_backend/internal/core/domain"
	portssvc "github.com/authgrid/auth_backend/internal/core/ports/services"
	"github.com/authgrid/auth_backend/internal/handlers"
	"github.com/authgrid/auth_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuthFlowSvcFacade ---
type MockFlowService struct {
	mock.Mock
}

func (m *MockFlowService) BeginLogin(provider domain.AuthProvider) (string, error) {
	args := m.Called(provider)
	return args.String(0), args.Error(1)
}

func (m *MockFlowService) CompleteLogin(ctx context.Context, provider domain.AuthProvider, code, errParam string) portssvc.CallbackResult {
	args := m.Called(ctx, provider, code, errParam)
	return args.Get(0).(portssvc.CallbackResult)
}

// --- Test Suite ---
type OAuthHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockFlow *MockFlowService
	cfg      *config.Config
}

func (s *OAuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockFlow = new(MockFlowService)
	s.cfg = &config.Config{
		FrontendBaseURL:       "http://localhost:3000",
		SessionExpiryDuration: time.Hour,
	}

	h := handlers.NewOAuthHandler(s.mockFlow, s.cfg)
	s.router = gin.New()
	s.router.GET("/auth/google", h.Begin(domain.ProviderGoogle))
	s.router.GET("/auth/google/callback", h.Callback(domain.ProviderGoogle))
	s.router.GET("/auth/github", h.Begin(domain.ProviderGitHub))
	s.router.GET("/auth/github/callback", h.Callback(domain.ProviderGitHub))
}

func TestOAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OAuthHandlerTestSuite))
}

func (s *OAuthHandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *OAuthHandlerTestSuite) TestBegin_RedirectsToProvider() {
	s.mockFlow.On("BeginLogin", domain.ProviderGoogle).Return("https://accounts.google.com/o/oauth2/v2/auth?client_id=x", nil).Once()

	w := s.get("/auth/google")

	s.Equal(http.StatusFound, w.Code)
	s.Equal("https://accounts.google.com/o/oauth2/v2/auth?client_id=x", w.Header().Get("Location"))
}

func (s *OAuthHandlerTestSuite) TestCallback_Success() {
	result := portssvc.CallbackResult{
		State:        portssvc.CallbackSessionIssued,
		User:         &domain.User{UserID: "user-1"},
		SessionToken: "signed-session",
	}
	s.mockFlow.On("CompleteLogin", mock.Anything, domain.ProviderGitHub, "the-code", "").Return(result).Once()

	w := s.get("/auth/github/callback?code=the-code")

	s.Equal(http.StatusFound, w.Code)
	s.Equal("http://localhost:3000", w.Header().Get("Location"))

	cookie := sessionCookie(w.Result())
	s.Require().NotNil(cookie)
	s.Equal("signed-session", cookie.Value)
	s.True(cookie.HttpOnly)
}

func (s *OAuthHandlerTestSuite) TestCallback_ProviderError_RedirectsToLogin() {
	result := portssvc.CallbackResult{
		State: portssvc.CallbackProviderDenied,
		Err:   apperrors.ErrProviderDenied,
	}
	s.mockFlow.On("CompleteLogin", mock.Anything, domain.ProviderGoogle, "", "access_denied").Return(result).Once()

	w := s.get("/auth/google/callback?error=access_denied")

	// A cancellation is a navigational outcome: redirect, not an error page.
	s.Equal(http.StatusFound, w.Code)
	s.Equal("http://localhost:3000/login", w.Header().Get("Location"))
	s.Nil(sessionCookie(w.Result()))
}

func (s *OAuthHandlerTestSuite) TestCallback_MissingCode_ClientError() {
	result := portssvc.CallbackResult{
		State: portssvc.CallbackMissingCode,
		Err:   apperrors.ErrMissingCode,
	}
	s.mockFlow.On("CompleteLogin", mock.Anything, domain.ProviderGoogle, "", "").Return(result).Once()

	w := s.get("/auth/google/callback")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Empty(w.Header().Get("Location"))
	s.Nil(sessionCookie(w.Result()))
}

func (s *OAuthHandlerTestSuite) TestCallback_ExchangeFailure_RedirectsToLogin() {
	result := portssvc.CallbackResult{
		State: portssvc.CallbackFailed,
		Stage: portssvc.StageExchanging,
		Err:   apperrors.ErrExchange,
	}
	s.mockFlow.On("CompleteLogin", mock.Anything, domain.ProviderGitHub, "bad-code", "").Return(result).Once()

	w := s.get("/auth/github/callback?code=bad-code")

	s.Equal(http.StatusFound, w.Code)
	s.Equal("http://localhost:3000/login", w.Header().Get("Location"))
	// No session may be issued on a failed exchange.
	s.Nil(sessionCookie(w.Result()))
	// The client never sees exchange details.
	s.NotContains(w.Body.String(), "exchange")
}
