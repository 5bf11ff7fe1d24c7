package shared

import (
	"time"

	"github.com/google/uuid"
)

// AuditRoot provides audit stamping and soft-delete state for entities that
// are never physically removed. Rows with IsDeleted set are invisible to all
// read paths; the physical row stays in storage.
type AuditRoot struct {
	BaseEntity
	Version   int
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
	CreatedIP string
	UpdatedIP string
	IsActive  bool
	IsDeleted bool
	DeletedAt *time.Time
	DeletedBy *uuid.UUID
}

// NewAuditRoot creates an audit root stamped with the creating actor
func NewAuditRoot(createdBy uuid.UUID, ip string) AuditRoot {
	root := AuditRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
		IsActive:   true,
	}
	root.CreatedBy = &createdBy
	root.UpdatedBy = &createdBy
	root.CreatedIP = ip
	root.UpdatedIP = ip
	return root
}

// GetVersion returns the version for optimistic locking
func (a *AuditRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion bumps the optimistic-lock version
func (a *AuditRoot) IncrementVersion() {
	a.Version++
}

// StampUpdated records the mutating actor and refreshes UpdatedAt.
// Every mutation must go through this, partial or not.
func (a *AuditRoot) StampUpdated(updatedBy uuid.UUID, ip string) {
	a.UpdatedBy = &updatedBy
	a.UpdatedIP = ip
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// MarkDeleted flips the soft-delete flags and stamps the deleting actor.
// The row itself is never removed from storage.
func (a *AuditRoot) MarkDeleted(deletedBy uuid.UUID) {
	now := time.Now()
	a.IsDeleted = true
	a.IsActive = false
	a.DeletedAt = &now
	a.DeletedBy = &deletedBy
	a.UpdatedAt = now
	a.IncrementVersion()
}

// Deactivate disables the row without deleting it
func (a *AuditRoot) Deactivate(updatedBy uuid.UUID, ip string) {
	a.IsActive = false
	a.StampUpdated(updatedBy, ip)
}

// Activate re-enables a deactivated row
func (a *AuditRoot) Activate(updatedBy uuid.UUID, ip string) {
	a.IsActive = true
	a.StampUpdated(updatedBy, ip)
}

// TenantAuditRoot extends AuditRoot with mandatory tenant ownership.
// Every non-platform row belongs to exactly one tenant.
type TenantAuditRoot struct {
	AuditRoot
	TenantID uuid.UUID
}

// NewTenantAuditRoot creates a tenant-scoped audit root
func NewTenantAuditRoot(tenantID, createdBy uuid.UUID, ip string) TenantAuditRoot {
	return TenantAuditRoot{
		AuditRoot: NewAuditRoot(createdBy, ip),
		TenantID:  tenantID,
	}
}

// BelongsTo reports whether the row is owned by the given tenant
func (t *TenantAuditRoot) BelongsTo(tenantID uuid.UUID) bool {
	return t.TenantID == tenantID
}
