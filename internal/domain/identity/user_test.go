package identity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemUser(t *testing.T) {
	tenantID := uuid.New()
	actor := uuid.New()

	t.Run("creates user with valid inputs", func(t *testing.T) {
		user, err := NewSystemUser(tenantID, "jsmith", "jsmith@example.com", "s3cret-pass", RoleTeacher, actor, "10.0.0.1")
		require.NoError(t, err)
		require.NotNil(t, user)

		require.NotNil(t, user.TenantID)
		assert.Equal(t, tenantID, *user.TenantID)
		assert.Equal(t, "jsmith", user.Username)
		assert.Equal(t, "jsmith@example.com", user.Email)
		assert.Equal(t, RoleTeacher, user.Role)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.IsActive)
		assert.Equal(t, 1, user.GetVersion())
	})

	t.Run("lowercases username and email", func(t *testing.T) {
		user, err := NewSystemUser(tenantID, "  JSmith  ", "  JSmith@Example.COM ", "s3cret-pass", RoleStudent, actor, "")
		require.NoError(t, err)
		assert.Equal(t, "jsmith", user.Username)
		assert.Equal(t, "jsmith@example.com", user.Email)
	})

	t.Run("rejects SUPER_ADMIN in tenant scope", func(t *testing.T) {
		_, err := NewSystemUser(tenantID, "root", "root@example.com", "s3cret-pass", RoleSuperAdmin, actor, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be tenant-scoped")
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewSystemUser(tenantID, "ab", "ab@example.com", "s3cret-pass", RoleStudent, actor, "")
		require.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewSystemUser(tenantID, "jsmith", "not-an-email", "s3cret-pass", RoleStudent, actor, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "valid email")
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewSystemUser(tenantID, "jsmith", "jsmith@example.com", "s3cret-pass", Role("MANAGER"), actor, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown role")
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewSystemUser(tenantID, "jsmith", "jsmith@example.com", "short", RoleStudent, actor, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("rejects password over 72 bytes", func(t *testing.T) {
		_, err := NewSystemUser(tenantID, "jsmith", "jsmith@example.com", strings.Repeat("x", 73), RoleStudent, actor, "")
		require.Error(t, err)
	})
}

func TestNewSuperAdmin(t *testing.T) {
	admin, err := NewSuperAdmin("platform-admin", "admin@platform.example.com", "s3cret-pass", uuid.New(), "10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, admin.TenantID)
	assert.Equal(t, RoleSuperAdmin, admin.Role)
}

func TestSystemUserPasswords(t *testing.T) {
	user, err := NewSuperAdmin("platform-admin", "admin@platform.example.com", "original-pass", uuid.New(), "")
	require.NoError(t, err)

	t.Run("verifies correct password", func(t *testing.T) {
		assert.True(t, user.VerifyPassword("original-pass"))
		assert.False(t, user.VerifyPassword("wrong-pass"))
	})

	t.Run("change requires current password", func(t *testing.T) {
		err := user.ChangePassword("wrong-pass", "replacement-pass")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")
		assert.True(t, user.VerifyPassword("original-pass"))
	})

	t.Run("change replaces hash", func(t *testing.T) {
		err := user.ChangePassword("original-pass", "replacement-pass")
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("replacement-pass"))
		assert.False(t, user.VerifyPassword("original-pass"))
	})

	t.Run("set bypasses current password check", func(t *testing.T) {
		err := user.SetPassword("reset-by-admin")
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("reset-by-admin"))
	})
}

func TestSystemUserRecordLogin(t *testing.T) {
	user, err := NewSuperAdmin("platform-admin", "admin@platform.example.com", "s3cret-pass", uuid.New(), "")
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	user.RecordLogin("203.0.113.7")
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, "203.0.113.7", user.LastLoginIP)
}

func TestRole(t *testing.T) {
	t.Run("valid set is closed", func(t *testing.T) {
		for _, r := range []Role{RoleSuperAdmin, RoleTenantAdmin, RoleTeacher, RoleStudent} {
			assert.True(t, r.Valid(), r.String())
		}
		assert.False(t, Role("MANAGER").Valid())
		assert.False(t, Role("").Valid())
	})

	t.Run("only SUPER_ADMIN escapes tenant scoping", func(t *testing.T) {
		assert.False(t, RoleSuperAdmin.TenantScoped())
		assert.True(t, RoleTenantAdmin.TenantScoped())
		assert.True(t, RoleTeacher.TenantScoped())
		assert.True(t, RoleStudent.TenantScoped())
	})

	t.Run("administrative roles", func(t *testing.T) {
		assert.True(t, RoleSuperAdmin.Administrative())
		assert.True(t, RoleTenantAdmin.Administrative())
		assert.False(t, RoleTeacher.Administrative())
		assert.False(t, RoleStudent.Administrative())
	})
}
