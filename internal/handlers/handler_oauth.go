package handlers

import (
	"log/slog"
	"net/http"

	"github.com/authgrid/auth_backend/internal/core/domain"
	portssvc "github.com/authgrid/auth_backend/internal/core/ports/services"
	"github.com/authgrid/auth_backend/internal/middleware"
	"github.com/authgrid/auth_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// OAuthHandler drives the HTTP side of the OAuth login state machine. The
// flow service decides what happened; this handler only translates the tagged
// outcome into redirects and responses.
type OAuthHandler struct {
	flowService portssvc.AuthFlowSvcFacade
	cfg         *config.Config
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(flowService portssvc.AuthFlowSvcFacade, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{
		flowService: flowService,
		cfg:         cfg,
	}
}

// Begin returns a handler that redirects the client to the provider's
// authorize endpoint. No server state is held between this redirect and the
// callback.
func (h *OAuthHandler) Begin(provider domain.AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromContext(c)

		authorizeURL, err := h.flowService.BeginLogin(provider)
		if err != nil {
			logger.Error("Failed to begin OAuth login", slog.String("provider", string(provider)), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}

		c.Redirect(http.StatusFound, authorizeURL)
	}
}

// Callback returns a handler for the provider's redirect back. Outcomes map
// to HTTP as follows: a provider-reported error or any post-callback failure
// redirects to the frontend login page (user-recoverable, details stay in the
// server log); a callback with neither code nor error is a client error; a
// completed flow sets the session cookie and redirects to the frontend.
func (h *OAuthHandler) Callback(provider domain.AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromContext(c)

		code := c.Query("code")
		errParam := c.Query("error")

		result := h.flowService.CompleteLogin(c.Request.Context(), provider, code, errParam)

		switch result.State {
		case portssvc.CallbackSessionIssued:
			logger.Info("OAuth login completed",
				slog.String("provider", string(provider)),
				slog.String("user_id", result.User.UserID),
			)
			setSessionCookie(c, h.cfg, result.SessionToken)
			c.Redirect(http.StatusFound, h.cfg.FrontendBaseURL)

		case portssvc.CallbackProviderDenied:
			logger.Info("OAuth login denied at provider",
				slog.String("provider", string(provider)),
				slog.String("error", result.Err.Error()),
			)
			c.Redirect(http.StatusFound, h.cfg.FrontendBaseURL+"/login")

		case portssvc.CallbackMissingCode:
			logger.Warn("OAuth callback without code or error", slog.String("provider", string(provider)))
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing authorization code"})

		case portssvc.CallbackFailed:
			// Full detail stays server-side; the client only sees the login page.
			logger.Error("OAuth login failed",
				slog.String("provider", string(provider)),
				slog.String("stage", result.Stage),
				slog.String("error", result.Err.Error()),
			)
			c.Redirect(http.StatusFound, h.cfg.FrontendBaseURL+"/login")
		}
	}
}
