package people

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// Teacher is a staff profile delivering courses. Username is unique per
// tenant; the profile may be linked to a SystemUser account.
type Teacher struct {
	shared.TenantAuditRoot
	UserID    *uuid.UUID
	Username  string
	FirstName string
	LastName  string
	Email     string
	Bio       string
}

// NewTeacher creates a teacher profile
func NewTeacher(tenantID uuid.UUID, username, email, firstName, lastName string, createdBy uuid.UUID, ip string) (*Teacher, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username must be 3-50 characters: lowercase letters, digits, dot, dash, underscore")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if err := validateName(firstName, "First name"); err != nil {
		return nil, err
	}
	if err := validateName(lastName, "Last name"); err != nil {
		return nil, err
	}
	return &Teacher{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		Username:        username,
		Email:           email,
		FirstName:       strings.TrimSpace(firstName),
		LastName:        strings.TrimSpace(lastName),
	}, nil
}

// Update applies partial profile changes
func (t *Teacher) Update(firstName, lastName, bio string) error {
	if firstName != "" {
		if err := validateName(firstName, "First name"); err != nil {
			return err
		}
		t.FirstName = strings.TrimSpace(firstName)
	}
	if lastName != "" {
		if err := validateName(lastName, "Last name"); err != nil {
			return err
		}
		t.LastName = strings.TrimSpace(lastName)
	}
	if len(bio) > 5000 {
		return shared.NewDomainError("INVALID_BIO", "Bio cannot exceed 5000 characters")
	}
	if bio != "" {
		t.Bio = bio
	}
	return nil
}

// AttachUser links the teacher to a provisioned SystemUser account
func (t *Teacher) AttachUser(userID uuid.UUID) {
	t.UserID = &userID
}
