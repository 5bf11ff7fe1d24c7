package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandingKeys(t *testing.T) {
	tenantID := uuid.MustParse("5e3c9a1e-0000-4000-8000-000000000001")

	assert.Equal(t,
		"tenants/5e3c9a1e-0000-4000-8000-000000000001/branding/logo.png",
		BrandingLogoKey(tenantID, "My Logo.PNG"))

	assert.Equal(t,
		"tenants/5e3c9a1e-0000-4000-8000-000000000001/branding/favicon.ico",
		BrandingFaviconKey(tenantID, "favicon.ico"))
}

func TestInMemoryObjectStorage_RoundTrip(t *testing.T) {
	store := NewInMemoryObjectStorage()
	ctx := context.Background()
	key := BrandingLogoKey(uuid.New(), "logo.png")

	exists, err := store.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Upload(ctx, key, []byte("png-bytes"), "image/png"))

	exists, err = store.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	url, expiresAt, err := store.GenerateDownloadURL(ctx, key, 5*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, key)
	assert.True(t, expiresAt.After(time.Now()))

	require.NoError(t, store.DeleteObject(ctx, key))

	_, _, err = store.GenerateDownloadURL(ctx, key, 5*time.Minute)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestInMemoryObjectStorage_EmptyKeyRejected(t *testing.T) {
	store := NewInMemoryObjectStorage()
	ctx := context.Background()

	assert.Error(t, store.Upload(ctx, "", nil, ""))
	assert.Error(t, store.DeleteObject(ctx, ""))
	_, err := store.ObjectExists(ctx, "")
	assert.Error(t, err)
}
