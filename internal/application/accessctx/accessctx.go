// Package accessctx carries the per-request authorization scope that every
// service method consults before touching tenant data.
//
// The rules are uniform across the whole API surface:
//
//   - SUPER_ADMIN is exempt from tenant scoping and may name any target
//     tenant explicitly.
//   - Every other role is pinned to the tenant in its token; naming a
//     different tenant is FORBIDDEN.
//   - Writes are additionally gated by role: TEACHER and STUDENT may only
//     mutate their own rows.
package accessctx

import (
	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/shared"
)

// Access is the resolved authorization scope of one request, derived from
// validated JWT claims by the HTTP middleware.
type Access struct {
	UserID   uuid.UUID
	Role     identity.Role
	TenantID *uuid.UUID // nil only for SUPER_ADMIN
	IP       string
}

// IsSuperAdmin reports whether the caller is exempt from tenant scoping
func (a Access) IsSuperAdmin() bool {
	return a.Role == identity.RoleSuperAdmin
}

// ResolveTenant decides which tenant an operation is scoped to.
// requested is the tenant the caller named (uuid.Nil when unnamed).
//
// SUPER_ADMIN may address any tenant but must name one for tenant-scoped
// operations. Everyone else is forced onto their own tenant, and naming a
// different one is a cross-tenant access attempt.
func (a Access) ResolveTenant(requested uuid.UUID) (uuid.UUID, error) {
	if a.IsSuperAdmin() {
		if requested != uuid.Nil {
			return requested, nil
		}
		if a.TenantID != nil {
			return *a.TenantID, nil
		}
		return uuid.Nil, shared.ErrTenantRequired
	}

	if a.TenantID == nil || *a.TenantID == uuid.Nil {
		return uuid.Nil, shared.ErrForbidden
	}
	if requested != uuid.Nil && requested != *a.TenantID {
		return uuid.Nil, shared.ErrForbidden
	}
	return *a.TenantID, nil
}

// RequireRole fails with FORBIDDEN unless the caller holds one of the roles
func (a Access) RequireRole(roles ...identity.Role) error {
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return shared.ErrForbidden
}

// RequireAdministrative fails unless the caller is SUPER_ADMIN or TENANT_ADMIN
func (a Access) RequireAdministrative() error {
	if a.Role.Administrative() {
		return nil
	}
	return shared.ErrForbidden
}

// CanReach reports whether a row owned by rowTenant is visible to the caller
func (a Access) CanReach(rowTenant uuid.UUID) bool {
	if a.IsSuperAdmin() {
		return true
	}
	return a.TenantID != nil && *a.TenantID == rowTenant
}

// CheckOwnership fails with FORBIDDEN when a non-SUPER_ADMIN caller touches
// a row outside their tenant. Used after loads that bypass tenant filters.
func (a Access) CheckOwnership(rowTenant uuid.UUID) error {
	if !a.CanReach(rowTenant) {
		return shared.ErrCrossTenant
	}
	return nil
}
