package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/authgrid/auth_backend/internal/apperrors"
	portssvc "github.com/authgrid/auth_backend/internal/core/ports/services"
	"github.com/authgrid/auth_backend/internal/dto"
	"github.com/authgrid/auth_backend/internal/middleware"
	"github.com/authgrid/auth_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// invalidCredentialsMessage is returned for every failed email login, whether
// the email is unknown or the password is wrong, to prevent account
// enumeration.
const invalidCredentialsMessage = "Invalid Email or Password"

// AuthHandler handles email/password authentication and session endpoints.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService portssvc.UserSvcFacade, tokenService portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		cfg:          cfg,
	}
}

// EmailLogin godoc
// @Summary Email/password login
// @Description Authenticates a user against the stored email-provider record and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.EmailLoginRequest true "Login Credentials"
// @Success 200 {object} map[string]dto.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/email [post]
func (h *AuthHandler) EmailLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.EmailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.userService.VerifyEmailLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": invalidCredentialsMessage})
			return
		}
		logger.Error("Email login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	token, err := h.tokenService.GenerateSessionToken(c.Request.Context(), user.UserID)
	if err != nil {
		logger.Error("Failed to sign session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate session"})
		return
	}

	setSessionCookie(c, h.cfg, token)
	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserResponse(user)})
}

// Me godoc
// @Summary Current user
// @Description Returns the user bound to the presented session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]dto.UserResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		logger := middleware.GetLoggerFromContext(c)
		logger.Error("Failed to load current user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserResponse(user)})
}

// Logout godoc
// @Summary Logout
// @Description Clears the session cookie. There is no server-side session state to revoke.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, h.cfg)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
