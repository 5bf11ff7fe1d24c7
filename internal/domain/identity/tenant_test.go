package identity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	actor := uuid.New()

	t.Run("creates tenant with valid inputs", func(t *testing.T) {
		tenant, err := NewTenant("Acme Learning", "acme-learning", actor, "10.0.0.1")
		require.NoError(t, err)
		require.NotNil(t, tenant)

		assert.Equal(t, "Acme Learning", tenant.Name)
		assert.Equal(t, "acme-learning", tenant.Code)
		assert.True(t, tenant.IsActive)
		assert.False(t, tenant.IsDeleted)
		assert.Equal(t, 1, tenant.GetVersion())
	})

	t.Run("lowercases code", func(t *testing.T) {
		tenant, err := NewTenant("Acme", "ACME", actor, "")
		require.NoError(t, err)
		assert.Equal(t, "acme", tenant.Code)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewTenant("   ", "acme", actor, "")
		require.Error(t, err)
	})

	t.Run("rejects name over 200 characters", func(t *testing.T) {
		_, err := NewTenant(strings.Repeat("a", 201), "acme", actor, "")
		require.Error(t, err)
	})

	t.Run("rejects code with invalid characters", func(t *testing.T) {
		_, err := NewTenant("Acme", "acme_corp!", actor, "")
		require.Error(t, err)
	})

	t.Run("rejects code shorter than 3 characters", func(t *testing.T) {
		_, err := NewTenant("Acme", "ab", actor, "")
		require.Error(t, err)
	})
}

func TestTenantMutations(t *testing.T) {
	tenant, err := NewTenant("Acme Learning", "acme", uuid.New(), "")
	require.NoError(t, err)

	t.Run("rename validates length", func(t *testing.T) {
		require.NoError(t, tenant.Rename("Acme Academy"))
		assert.Equal(t, "Acme Academy", tenant.Name)

		require.Error(t, tenant.Rename(""))
		assert.Equal(t, "Acme Academy", tenant.Name)
	})

	t.Run("domain is lowercased", func(t *testing.T) {
		require.NoError(t, tenant.SetDomain("Learn.Acme.COM"))
		assert.Equal(t, "learn.acme.com", tenant.Domain)
	})

	t.Run("branding keeps existing key when blank", func(t *testing.T) {
		tenant.SetBranding("tenants/acme/logo.png", "")
		assert.Equal(t, "tenants/acme/logo.png", tenant.LogoKey)
		assert.Empty(t, tenant.FaviconKey)

		tenant.SetBranding("", "tenants/acme/favicon.ico")
		assert.Equal(t, "tenants/acme/logo.png", tenant.LogoKey)
		assert.Equal(t, "tenants/acme/favicon.ico", tenant.FaviconKey)
	})
}

func TestTenantSoftDelete(t *testing.T) {
	tenant, err := NewTenant("Acme Learning", "acme", uuid.New(), "")
	require.NoError(t, err)

	deleter := uuid.New()
	tenant.MarkDeleted(deleter)

	assert.True(t, tenant.IsDeleted)
	assert.False(t, tenant.IsActive)
	require.NotNil(t, tenant.DeletedAt)
	require.NotNil(t, tenant.DeletedBy)
	assert.Equal(t, deleter, *tenant.DeletedBy)
	assert.Equal(t, 2, tenant.GetVersion())
}
