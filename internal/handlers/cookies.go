package handlers

import (
	"net/http"

	"github.com/authgrid/auth_backend/internal/middleware"
	"github.com/authgrid/auth_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// setSessionCookie attaches the session credential to the response. The
// cookie is httpOnly always; in production it is additionally Secure with
// SameSite=None so a frontend on a separate origin can send it, while
// development keeps SameSite=Lax.
func setSessionCookie(c *gin.Context, cfg *config.Config, token string) {
	sameSite := http.SameSiteLaxMode
	if cfg.IsProduction {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.SessionCookieName, token, int(cfg.SessionExpiryDuration.Seconds()), "/", "", cfg.IsProduction, true)
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(c *gin.Context, cfg *config.Config) {
	sameSite := http.SameSiteLaxMode
	if cfg.IsProduction {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", cfg.IsProduction, true)
}
