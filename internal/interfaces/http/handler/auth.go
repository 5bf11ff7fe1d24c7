package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	identityapp "github.com/lms/backend/internal/application/identity"
	"github.com/lms/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request.
// TenantCode is empty for platform-level accounts.
type LoginRequest struct {
	TenantCode string `json:"tenant_code"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents a logout request
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents a self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	TenantCode string `json:"tenant_code"`
	Username   string `json:"username" binding:"required"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Login authenticates a user and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		TenantCode: req.TenantCode,
		Username:   req.Username,
		Password:   req.Password,
		IP:         c.ClientIP(),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), identityapp.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout revokes the caller's tokens
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	accessToken := strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)

	if err := h.authService.Logout(c.Request.Context(), identityapp.LogoutInput{
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
	}); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), access.UserID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword changes the caller's own password and invalidates all
// their sessions
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	access, ok := getAccess(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), identityapp.ChangePasswordInput{
		UserID:          access.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		IP:              c.ClientIP(),
	}); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ForgotPasswordResponse is the neutral acknowledgment returned to every
// caller, whether or not the account exists
type ForgotPasswordResponse struct {
	Message string `json:"message"`
}

// ForgotPassword starts the reset flow. The token is emailed to the
// account owner and never included in the response.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), identityapp.ForgotPasswordInput{
		TenantCode: req.TenantCode,
		Username:   req.Username,
	}); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ForgotPasswordResponse{
		Message: "If the account exists, a password reset email has been sent",
	})
}

// ResetPassword consumes a reset token and sets a new password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), identityapp.ResetPasswordInput{
		ResetToken:  req.ResetToken,
		NewPassword: req.NewPassword,
		IP:          c.ClientIP(),
	}); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.POST("/change-password", h.ChangePassword)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}
