// Package scope provides query scoping for GORM: tenant row filtering and
// automatic exclusion of soft-deleted rows.
//
// Usage:
//
//	db.Scopes(scope.Tenant(tenantID)).Find(&courses)
//
// Soft-delete filtering is registered once per connection via
// RegisterSoftDeleteCallback; every SELECT against a table carrying an
// is_deleted column gets WHERE is_deleted = false unless the query is
// Unscoped or already constrains is_deleted.
package scope

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTenantIDRequired is returned when a tenant scope is required but missing
var ErrTenantIDRequired = errors.New("tenant_id is required but not provided")

// Tenant filters rows to a single tenant
func Tenant(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// MaybeTenant filters rows to a tenant when one is given; a nil tenant
// addresses the platform scope (tenant_id IS NULL)
func MaybeTenant(tenantID *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == nil {
			return db.Where("tenant_id IS NULL")
		}
		return db.Where("tenant_id = ?", *tenantID)
	}
}

// ActiveOnly filters out deactivated rows
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}
