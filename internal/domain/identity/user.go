package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,49}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// SystemUser is an authenticated principal. TenantID is nil only for
// SUPER_ADMIN users, which operate across all tenants. Username and email
// are unique per tenant, never globally.
type SystemUser struct {
	shared.AuditRoot
	TenantID     *uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	DisplayName  string
	Role         Role
	LastLoginAt  *time.Time
	LastLoginIP  string
}

// NewSystemUser creates a tenant-scoped user
func NewSystemUser(tenantID uuid.UUID, username, email, password string, role Role, createdBy uuid.UUID, ip string) (*SystemUser, error) {
	if role == RoleSuperAdmin {
		return nil, shared.NewDomainError("INVALID_ROLE", "SUPER_ADMIN users cannot be tenant-scoped")
	}
	user, err := newUser(username, email, password, role, createdBy, ip)
	if err != nil {
		return nil, err
	}
	user.TenantID = &tenantID
	return user, nil
}

// NewSuperAdmin creates a platform-level user exempt from tenant scoping
func NewSuperAdmin(username, email, password string, createdBy uuid.UUID, ip string) (*SystemUser, error) {
	return newUser(username, email, password, RoleSuperAdmin, createdBy, ip)
}

func newUser(username, email, password string, role Role, createdBy uuid.UUID, ip string) (*SystemUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username must be 3-50 characters: lowercase letters, digits, dot, dash, underscore")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &SystemUser{
		AuditRoot:    shared.NewAuditRoot(createdBy, ip),
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *SystemUser) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the password hash (admin reset or self-service reset)
func (u *SystemUser) SetPassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// ChangePassword verifies the current password before replacing it
func (u *SystemUser) ChangePassword(current, next string) error {
	if !u.VerifyPassword(current) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(next)
}

// SetEmail sets the user's email address
func (u *SystemUser) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(email))
	return nil
}

// SetDisplayName sets the user's display name
func (u *SystemUser) SetDisplayName(name string) error {
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}
	u.DisplayName = strings.TrimSpace(name)
	return nil
}

// RecordLogin stamps the last successful login
func (u *SystemUser) RecordLogin(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 254 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return string(hash), nil
}
