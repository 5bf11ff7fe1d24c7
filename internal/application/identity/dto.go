package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/shared"
)

// LoginInput contains credentials plus the tenant the caller is logging
// into. TenantCode empty means the platform scope (SUPER_ADMIN accounts).
type LoginInput struct {
	TenantCode string
	Username   string
	Password   string
	IP         string
}

// UserInfo is the authenticated user's profile returned with tokens
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
}

// LoginResult contains the token pair and user info after a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput carries the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the new token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput carries the tokens to revoke
type LogoutInput struct {
	AccessToken  string
	RefreshToken string
}

// ChangePasswordInput carries a self-service password change
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
	IP              string
}

// ForgotPasswordInput starts the reset flow for a tenant-scoped account
type ForgotPasswordInput struct {
	TenantCode string
	Username   string
}

// ResetPasswordInput completes the reset flow
type ResetPasswordInput struct {
	ResetToken  string
	NewPassword string
	IP          string
}

// CreateTenantRequest creates a tenant (SUPER_ADMIN only)
type CreateTenantRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required"`
	Domain string `json:"domain"`
	Notes  string `json:"notes"`
}

// UpdateTenantRequest applies partial tenant changes
type UpdateTenantRequest struct {
	Name   *string `json:"name"`
	Domain *string `json:"domain"`
	Notes  *string `json:"notes"`
}

// TenantResponse is the API shape of a tenant
type TenantResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Domain     string    `json:"domain,omitempty"`
	LogoKey    string    `json:"logo_key,omitempty"`
	FaviconKey string    `json:"favicon_key,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ToTenantResponse converts a domain tenant to its API shape
func ToTenantResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:         t.ID,
		Name:       t.Name,
		Code:       t.Code,
		Domain:     t.Domain,
		LogoKey:    t.LogoKey,
		FaviconKey: t.FaviconKey,
		Notes:      t.Notes,
		IsActive:   t.IsActive,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		Version:    t.Version,
	}
}

// ToTenantResponses converts a slice of tenants
func ToTenantResponses(tenants []identity.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = ToTenantResponse(&tenants[i])
	}
	return responses
}

// TenantListFilter contains list/pagination options for tenants
type TenantListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// CreateUserRequest creates a tenant-scoped user
type CreateUserRequest struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	Username    string    `json:"username" binding:"required"`
	Email       string    `json:"email" binding:"required"`
	Password    string    `json:"password" binding:"required"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role" binding:"required"`
}

// UpdateUserRequest applies partial user changes
type UpdateUserRequest struct {
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
}

// UserResponse is the API shape of a system user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ToUserResponse converts a domain user to its API shape
func ToUserResponse(u *identity.SystemUser) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		Version:     u.Version,
	}
}

// ToUserResponses converts a slice of users
func ToUserResponses(users []identity.SystemUser) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}

// UserListFilter contains list/pagination options for users
type UserListFilter struct {
	TenantID uuid.UUID `form:"tenant_id"`
	Page     int       `form:"page"`
	PageSize int       `form:"page_size"`
	OrderBy  string    `form:"order_by"`
	OrderDir string    `form:"order_dir"`
	Search   string    `form:"search"`
	Role     string    `form:"role"`
}

func buildFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = search
	return filter
}
