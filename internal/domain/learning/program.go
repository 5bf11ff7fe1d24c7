// Package learning holds the curriculum hierarchy:
// Program → Specialization → Course → Module → Topic → Video.
package learning

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// Program is a top-level curriculum grouping within a tenant
type Program struct {
	shared.TenantAuditRoot
	Name        string
	Code        string
	Description string
}

// NewProgram creates a new program
func NewProgram(tenantID uuid.UUID, name, code string, createdBy uuid.UUID, ip string) (*Program, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Program name must be 1-200 characters")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Program code must be 1-50 characters")
	}
	return &Program{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		Name:            name,
		Code:            code,
	}, nil
}

// Update applies name/description changes
func (p *Program) Update(name, description string) error {
	if name != "" {
		name = strings.TrimSpace(name)
		if len(name) > 200 {
			return shared.NewDomainError("INVALID_NAME", "Program name must be 1-200 characters")
		}
		p.Name = name
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	if description != "" {
		p.Description = description
	}
	return nil
}

// Specialization is a concentration within a program
type Specialization struct {
	shared.TenantAuditRoot
	ProgramID   uuid.UUID
	Name        string
	Code        string
	Description string
}

// NewSpecialization creates a specialization under a program
func NewSpecialization(tenantID, programID uuid.UUID, name, code string, createdBy uuid.UUID, ip string) (*Specialization, error) {
	if programID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROGRAM", "Specialization requires a program")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Specialization name must be 1-200 characters")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Specialization code must be 1-50 characters")
	}
	return &Specialization{
		TenantAuditRoot: shared.NewTenantAuditRoot(tenantID, createdBy, ip),
		ProgramID:       programID,
		Name:            name,
		Code:            code,
	}, nil
}

// Update applies name/description changes
func (s *Specialization) Update(name, description string) error {
	if name != "" {
		name = strings.TrimSpace(name)
		if len(name) > 200 {
			return shared.NewDomainError("INVALID_NAME", "Specialization name must be 1-200 characters")
		}
		s.Name = name
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	if description != "" {
		s.Description = description
	}
	return nil
}
