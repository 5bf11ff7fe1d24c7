package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/shared"
)

// AuditModel provides common persistence fields for audited entities:
// identity, timestamps, optimistic-lock version, actor stamps, and the
// soft-delete flags.
type AuditModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
	CreatedIP string `gorm:"size:45"`
	UpdatedIP string `gorm:"size:45"`
	IsActive  bool   `gorm:"not null;default:true"`
	IsDeleted bool   `gorm:"not null;default:false;index"`
	DeletedAt *time.Time
	DeletedBy *uuid.UUID
}

// ToDomain converts AuditModel to a domain AuditRoot
func (m *AuditModel) ToDomain() shared.AuditRoot {
	return shared.AuditRoot{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Version:   m.Version,
		CreatedBy: m.CreatedBy,
		UpdatedBy: m.UpdatedBy,
		CreatedIP: m.CreatedIP,
		UpdatedIP: m.UpdatedIP,
		IsActive:  m.IsActive,
		IsDeleted: m.IsDeleted,
		DeletedAt: m.DeletedAt,
		DeletedBy: m.DeletedBy,
	}
}

// FromDomain populates AuditModel from a domain AuditRoot
func (m *AuditModel) FromDomain(a shared.AuditRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
	m.CreatedBy = a.CreatedBy
	m.UpdatedBy = a.UpdatedBy
	m.CreatedIP = a.CreatedIP
	m.UpdatedIP = a.UpdatedIP
	m.IsActive = a.IsActive
	m.IsDeleted = a.IsDeleted
	m.DeletedAt = a.DeletedAt
	m.DeletedBy = a.DeletedBy
}

// TenantAuditModel extends AuditModel with mandatory tenant ownership
type TenantAuditModel struct {
	AuditModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// ToDomain converts TenantAuditModel to a domain TenantAuditRoot
func (m *TenantAuditModel) ToDomain() shared.TenantAuditRoot {
	return shared.TenantAuditRoot{
		AuditRoot: m.AuditModel.ToDomain(),
		TenantID:  m.TenantID,
	}
}

// FromDomain populates TenantAuditModel from a domain TenantAuditRoot
func (m *TenantAuditModel) FromDomain(t shared.TenantAuditRoot) {
	m.AuditModel.FromDomain(t.AuditRoot)
	m.TenantID = t.TenantID
}
