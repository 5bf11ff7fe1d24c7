package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBlacklist_JTI(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

	blacklisted, err = bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestInMemoryBlacklist_ExpiredEntryIsIgnored(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestInMemoryBlacklist_UserInvalidation(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	issuedBefore := time.Now()
	require.NoError(t, bl.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

	invalidated, err := bl.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalidated)

	invalidated, err = bl.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.False(t, invalidated)

	invalidated, err = bl.IsUserTokenInvalidated(ctx, "other-user", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalidated)
}
