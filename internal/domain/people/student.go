// Package people holds learner and staff profiles.
package people

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,49}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Student is a learner profile. Username is unique per tenant. A student
// always has exactly one primary email row, created in the same transaction
// as the student itself.
type Student struct {
	shared.TenantAuditRoot
	UserID    *uuid.UUID // linked SystemUser account, if provisioned
	ClientID  *uuid.UUID // sponsoring client organization, if any
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Emails    []StudentEmail
}

// StudentEmail is an address row owned by a student. Exactly one row per
// student carries IsPrimary.
type StudentEmail struct {
	shared.TenantAuditRoot
	StudentID uuid.UUID
	Address   string
	IsPrimary bool
}

// NewStudent creates a student together with its primary email row.
// Callers must persist both in one transaction.
func NewStudent(tenantID uuid.UUID, username, emailAddress, firstName, lastName string, createdBy uuid.UUID, ip string) (*Student, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username must be 3-50 characters: lowercase letters, digits, dot, dash, underscore")
	}
	if err := validateName(firstName, "First name"); err != nil {
		return nil, err
	}
	if err := validateName(lastName, "Last name"); err != nil {
		return nil, err
	}

	student := &Student{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		Username:        username,
		FirstName:       strings.TrimSpace(firstName),
		LastName:        strings.TrimSpace(lastName),
	}

	primary, err := newStudentEmail(tenantID, student.ID, emailAddress, true, createdBy, ip)
	if err != nil {
		return nil, err
	}
	student.Emails = []StudentEmail{*primary}

	return student, nil
}

// AddEmail attaches a secondary email address
func (s *Student) AddEmail(address string, createdBy uuid.UUID, ip string) error {
	email, err := newStudentEmail(s.TenantID, s.ID, address, false, createdBy, ip)
	if err != nil {
		return err
	}
	for _, existing := range s.Emails {
		if existing.Address == email.Address && !existing.IsDeleted {
			return shared.NewDomainError("DUPLICATE_EMAIL", "Student already has this email address")
		}
	}
	s.Emails = append(s.Emails, *email)
	return nil
}

// PrimaryEmail returns the primary address, or empty if not loaded
func (s *Student) PrimaryEmail() string {
	for _, e := range s.Emails {
		if e.IsPrimary && !e.IsDeleted {
			return e.Address
		}
	}
	return ""
}

// Update applies partial profile changes
func (s *Student) Update(firstName, lastName, phone string) error {
	if firstName != "" {
		if err := validateName(firstName, "First name"); err != nil {
			return err
		}
		s.FirstName = strings.TrimSpace(firstName)
	}
	if lastName != "" {
		if err := validateName(lastName, "Last name"); err != nil {
			return err
		}
		s.LastName = strings.TrimSpace(lastName)
	}
	if phone != "" {
		if len(phone) > 50 {
			return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
		}
		s.Phone = strings.TrimSpace(phone)
	}
	return nil
}

// AttachClient links the student to a sponsoring client
func (s *Student) AttachClient(clientID uuid.UUID) {
	s.ClientID = &clientID
}

// AttachUser links the student to a provisioned SystemUser account
func (s *Student) AttachUser(userID uuid.UUID) {
	s.UserID = &userID
}

func newStudentEmail(tenantID, studentID uuid.UUID, address string, primary bool, createdBy uuid.UUID, ip string) (*StudentEmail, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" || len(address) > 254 || !emailPattern.MatchString(address) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	return &StudentEmail{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		StudentID:       studentID,
		Address:         address,
		IsPrimary:       primary,
	}, nil
}

func validateName(name, label string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", label+" must be 1-100 characters")
	}
	return nil
}
