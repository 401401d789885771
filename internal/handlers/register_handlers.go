package handlers

import (
	"net/http"

	"github.com/authgrid/auth_backend/internal/core/domain"
	portssvc "github.com/authgrid/auth_backend/internal/core/ports/services"
	"github.com/authgrid/auth_backend/internal/middleware"
	"github.com/authgrid/auth_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all HTTP routes.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	flowService portssvc.AuthFlowSvcFacade,
) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	authHandler := NewAuthHandler(userService, tokenService, cfg)
	oauthHandler := NewOAuthHandler(flowService, cfg)

	// Rate limit password logins: 5 requests per minute per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/auth")
	{
		auth.POST("/email", limitMiddleware, authHandler.EmailLogin)
		auth.POST("/logout", authHandler.Logout)

		auth.GET("/google", oauthHandler.Begin(domain.ProviderGoogle))
		auth.GET("/google/callback", oauthHandler.Callback(domain.ProviderGoogle))

		auth.GET("/github", oauthHandler.Begin(domain.ProviderGitHub))
		auth.GET("/github/callback", oauthHandler.Callback(domain.ProviderGitHub))

		auth.GET("/me", middleware.SessionAuthMiddleware(cfg.JWTSecret), authHandler.Me)
	}
}
