package accessctx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenantAccess(role identity.Role, tenantID uuid.UUID) Access {
	return Access{
		UserID:   uuid.New(),
		Role:     role,
		TenantID: &tenantID,
		IP:       "10.0.0.1",
	}
}

func TestResolveTenant_SuperAdmin(t *testing.T) {
	a := Access{UserID: uuid.New(), Role: identity.RoleSuperAdmin}

	target := uuid.New()
	resolved, err := a.ResolveTenant(target)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)

	// Tenant-scoped operations need an explicit target
	_, err = a.ResolveTenant(uuid.Nil)
	assert.ErrorIs(t, err, shared.ErrTenantRequired)
}

func TestResolveTenant_TenantAdmin_PinnedToOwnTenant(t *testing.T) {
	own := uuid.New()
	a := tenantAccess(identity.RoleTenantAdmin, own)

	resolved, err := a.ResolveTenant(uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, own, resolved)

	resolved, err = a.ResolveTenant(own)
	require.NoError(t, err)
	assert.Equal(t, own, resolved)
}

func TestResolveTenant_CrossTenantForbidden(t *testing.T) {
	for _, role := range []identity.Role{identity.RoleTenantAdmin, identity.RoleTeacher, identity.RoleStudent} {
		a := tenantAccess(role, uuid.New())
		_, err := a.ResolveTenant(uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden, "role %s must not cross tenants", role)
	}
}

func TestResolveTenant_MissingTenantClaim(t *testing.T) {
	a := Access{UserID: uuid.New(), Role: identity.RoleTenantAdmin}
	_, err := a.ResolveTenant(uuid.Nil)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestCheckOwnership(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	admin := tenantAccess(identity.RoleTenantAdmin, own)
	assert.NoError(t, admin.CheckOwnership(own))
	assert.Error(t, admin.CheckOwnership(other))

	super := Access{UserID: uuid.New(), Role: identity.RoleSuperAdmin}
	assert.NoError(t, super.CheckOwnership(other))
}

func TestRequireRole(t *testing.T) {
	a := tenantAccess(identity.RoleTeacher, uuid.New())
	assert.NoError(t, a.RequireRole(identity.RoleTeacher, identity.RoleTenantAdmin))
	assert.ErrorIs(t, a.RequireRole(identity.RoleStudent), shared.ErrForbidden)
	assert.Error(t, a.RequireAdministrative())

	admin := tenantAccess(identity.RoleTenantAdmin, uuid.New())
	assert.NoError(t, admin.RequireAdministrative())
}
