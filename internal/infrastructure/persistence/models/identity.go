package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/identity"
)

// TenantModel is the persistence model for tenants. Tenants are platform
// rows and carry no tenant_id of their own.
type TenantModel struct {
	AuditModel
	Name       string `gorm:"size:200;not null"`
	Code       string `gorm:"size:50;not null;uniqueIndex"`
	Domain     string `gorm:"size:253;index"`
	LogoKey    string `gorm:"size:500"`
	FaviconKey string `gorm:"size:500"`
	Notes      string `gorm:"type:text"`
}

// TableName specifies the table name
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain tenant
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		AuditRoot:  m.AuditModel.ToDomain(),
		Name:       m.Name,
		Code:       m.Code,
		Domain:     m.Domain,
		LogoKey:    m.LogoKey,
		FaviconKey: m.FaviconKey,
		Notes:      m.Notes,
	}
}

// TenantModelFromDomain creates a model from a domain tenant
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{
		Name:       t.Name,
		Code:       t.Code,
		Domain:     t.Domain,
		LogoKey:    t.LogoKey,
		FaviconKey: t.FaviconKey,
		Notes:      t.Notes,
	}
	m.AuditModel.FromDomain(t.AuditRoot)
	return m
}

// SystemUserModel is the persistence model for system users. TenantID is
// NULL only for SUPER_ADMIN accounts. Per-tenant uniqueness of username and
// email, including the platform scope where tenant_id IS NULL, is enforced
// by partial unique indexes in migrations.
type SystemUserModel struct {
	AuditModel
	TenantID     *uuid.UUID `gorm:"type:uuid;index"`
	Username     string     `gorm:"size:50;not null;index"`
	Email        string     `gorm:"size:254;not null;index"`
	PasswordHash string     `gorm:"size:100;not null"`
	DisplayName  string     `gorm:"size:200"`
	Role         string     `gorm:"size:20;not null;index"`
	LastLoginAt  *time.Time
	LastLoginIP  string `gorm:"size:45"`
}

// TableName specifies the table name
func (SystemUserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain system user
func (m *SystemUserModel) ToDomain() *identity.SystemUser {
	return &identity.SystemUser{
		AuditRoot:    m.AuditModel.ToDomain(),
		TenantID:     m.TenantID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Role:         identity.Role(m.Role),
		LastLoginAt:  m.LastLoginAt,
		LastLoginIP:  m.LastLoginIP,
	}
}

// SystemUserModelFromDomain creates a model from a domain system user
func SystemUserModelFromDomain(u *identity.SystemUser) *SystemUserModel {
	m := &SystemUserModel{
		TenantID:     u.TenantID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DisplayName:  u.DisplayName,
		Role:         string(u.Role),
		LastLoginAt:  u.LastLoginAt,
		LastLoginIP:  u.LastLoginIP,
	}
	m.AuditModel.FromDomain(u.AuditRoot)
	return m
}
