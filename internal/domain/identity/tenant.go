package identity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/shared"
)

// Tenant is the top-level organizational scope. Tenants themselves are
// platform-level rows: they carry audit and soft-delete state but no
// tenant_id of their own.
type Tenant struct {
	shared.AuditRoot
	Name       string
	Code       string
	Domain     string
	LogoKey    string // object-storage key for the branding logo
	FaviconKey string
	Notes      string
}

var tenantCodePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,48}[a-z0-9]$`)

// NewTenant creates a new tenant with required fields
func NewTenant(name, code string, createdBy uuid.UUID, ip string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name must be 1-200 characters")
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if !tenantCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Tenant code must be 3-50 lowercase alphanumeric characters or hyphens")
	}

	return &Tenant{
		AuditRoot: shared.NewAuditRoot(createdBy, ip),
		Name:      name,
		Code:      code,
	}, nil
}

// Rename changes the tenant display name
func (t *Tenant) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Tenant name must be 1-200 characters")
	}
	t.Name = name
	return nil
}

// SetDomain sets the custom domain used for tenant resolution
func (t *Tenant) SetDomain(domain string) error {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if len(domain) > 253 {
		return shared.NewDomainError("INVALID_DOMAIN", "Domain cannot exceed 253 characters")
	}
	t.Domain = domain
	return nil
}

// SetBranding records the object-storage keys of uploaded branding assets
func (t *Tenant) SetBranding(logoKey, faviconKey string) {
	if logoKey != "" {
		t.LogoKey = logoKey
	}
	if faviconKey != "" {
		t.FaviconKey = faviconKey
	}
}

// SetNotes sets free-form notes on the tenant
func (t *Tenant) SetNotes(notes string) {
	t.Notes = notes
}
