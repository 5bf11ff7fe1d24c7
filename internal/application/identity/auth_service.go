package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/lms/backend/internal/infrastructure/auth"
	"github.com/lms/backend/internal/infrastructure/mail"
)

const resetTokenTTL = 30 * time.Minute

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.SystemUserRepository
	tenantRepo identity.TenantRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	resetStore auth.ResetTokenStore
	mailer     mail.Mailer
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.SystemUserRepository,
	tenantRepo identity.TenantRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	resetStore auth.ResetTokenStore,
	mailer mail.Mailer,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		resetStore: resetStore,
		mailer:     mailer,
		logger:     logger,
	}
}

// Login authenticates a user in the named tenant and returns tokens.
// An empty tenant code addresses the platform scope.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt",
		zap.String("username", input.Username),
		zap.String("tenant_code", input.TenantCode))

	tenantID, err := s.resolveLoginTenant(ctx, input.TenantCode)
	if err != nil {
		// Do not leak whether the tenant exists
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	user, err := s.userRepo.FindByUsername(ctx, tenantID, input.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.IsActive {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", input.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin(input.IP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login already succeeded, only log
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User: UserInfo{
			ID:          user.ID,
			TenantID:    user.TenantID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			Role:        string(user.Role),
		},
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair.
// The old refresh token is revoked so it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID); err != nil {
		s.logger.Error("Blacklist check failed during refresh", zap.Error(err))
	} else if revoked {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}

	if invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime()); err != nil {
		s.logger.Error("User invalidation check failed during refresh", zap.Error(err))
	} else if invalidated {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh tokens")
	}

	// One-shot refresh tokens: the consumed token goes on the blacklist
	if ttl := claims.GetRemainingTTL(); ttl > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
			s.logger.Error("Failed to revoke consumed refresh token", zap.Error(err))
		}
	}

	s.logger.Info("Token refreshed", zap.String("user_id", user.ID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented tokens for their remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessToken != "" {
		if claims, err := s.jwtService.ValidateAccessToken(input.AccessToken); err == nil {
			s.revoke(ctx, claims)
		}
	}
	if input.RefreshToken != "" {
		if claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken); err == nil {
			s.revoke(ctx, claims)
		}
	}
	return nil
}

// ChangePassword verifies the current password and sets a new one.
// All outstanding tokens for the user are invalidated.
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(input.CurrentPassword, input.NewPassword); err != nil {
		return err
	}
	user.StampUpdated(user.ID, input.IP)

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.invalidateUserTokens(ctx, user.ID)
	s.logger.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// ForgotPassword issues a single-use reset token and emails it to the
// account owner. The endpoint is unauthenticated, so the token never
// appears in the response and unknown accounts get the same answer as
// known ones.
func (s *AuthService) ForgotPassword(ctx context.Context, input ForgotPasswordInput) error {
	tenantID, err := s.resolveLoginTenant(ctx, input.TenantCode)
	if err != nil {
		s.logger.Info("Password reset requested for unknown tenant",
			zap.String("tenant_code", input.TenantCode))
		return nil
	}

	user, err := s.userRepo.FindByUsername(ctx, tenantID, input.Username)
	if err != nil {
		s.logger.Info("Password reset requested for unknown user",
			zap.String("username", input.Username))
		return nil
	}

	token, err := s.resetStore.Issue(ctx, user.ID.String(), resetTokenTTL)
	if err != nil {
		s.logger.Error("Failed to issue reset token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to process reset request")
	}

	if err := s.mailer.SendPasswordReset(ctx, mail.PasswordResetMessage{
		To:          user.Email,
		DisplayName: user.DisplayName,
		Token:       token,
		ExpiresAt:   time.Now().Add(resetTokenTTL),
	}); err != nil {
		// Keep the response neutral; the failure is visible in logs only
		s.logger.Error("Failed to deliver reset token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return nil
	}

	s.logger.Info("Password reset token issued", zap.String("user_id", user.ID.String()))
	return nil
}

// ResetPassword consumes a reset token and sets the new password
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	userIDString, err := s.resetStore.Consume(ctx, input.ResetToken)
	if err != nil {
		if errors.Is(err, auth.ErrResetTokenNotFound) {
			return shared.NewDomainError("TOKEN_INVALID", "Reset token is invalid or expired")
		}
		s.logger.Error("Failed to consume reset token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	userID, err := uuid.Parse(userIDString)
	if err != nil {
		return shared.NewDomainError("TOKEN_INVALID", "Reset token is invalid or expired")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}
	user.StampUpdated(user.ID, input.IP)

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after password reset", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	s.invalidateUserTokens(ctx, user.ID)
	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	response := ToUserResponse(user)
	return &response, nil
}

// resolveLoginTenant maps a tenant code to its ID; empty code means the
// platform scope (nil)
func (s *AuthService) resolveLoginTenant(ctx context.Context, code string) (*uuid.UUID, error) {
	if code == "" {
		return nil, nil
	}
	tenant, err := s.tenantRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, shared.ErrNotFound
	}
	return &tenant.ID, nil
}

func (s *AuthService) revoke(ctx context.Context, claims *auth.Claims) {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token",
			zap.String("jti", claims.ID),
			zap.Error(err))
	}
}

func (s *AuthService) invalidateUserTokens(ctx context.Context, userID uuid.UUID) {
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), ttl); err != nil {
		s.logger.Error("Failed to invalidate user tokens",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate token")
	}
}
