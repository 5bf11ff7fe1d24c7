package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lms/backend/internal/application/accessctx"
	"github.com/lms/backend/internal/domain/identity"
	"github.com/lms/backend/internal/infrastructure/auth"
	"github.com/lms/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-bytes-long!!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "lms-backend-test",
	})
}

func setupRouter(cfg JWTMiddlewareConfig) (*gin.Engine, *accessctx.Access) {
	gin.SetMode(gin.TestMode)
	captured := &accessctx.Access{}
	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/protected", func(c *gin.Context) {
		if access, ok := GetAccess(c); ok {
			*captured = access
		}
		c.Status(http.StatusOK)
	})
	return r, captured
}

func TestJWTAuthMiddleware_ValidTokenBuildsAccess(t *testing.T) {
	svc := newTestJWTService()
	tenantID := uuid.New()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: &tenantID,
		UserID:   userID,
		Username: "admin",
		Role:     string(identity.RoleTenantAdmin),
	})
	require.NoError(t, err)

	r, captured := setupRouter(DefaultJWTConfig(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, captured.UserID)
	assert.Equal(t, identity.RoleTenantAdmin, captured.Role)
	require.NotNil(t, captured.TenantID)
	assert.Equal(t, tenantID, *captured.TenantID)
}

func TestJWTAuthMiddleware_PlatformTokenHasNilTenant(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   userID,
		Username: "root",
		Role:     string(identity.RoleSuperAdmin),
	})
	require.NoError(t, err)

	r, captured := setupRouter(DefaultJWTConfig(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, captured.TenantID)
	assert.Equal(t, identity.RoleSuperAdmin, captured.Role)
}

func TestJWTAuthMiddleware_MissingHeaderRejected(t *testing.T) {
	r, _ := setupRouter(DefaultJWTConfig(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_RefreshTokenRejectedOnAccessRoute(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "admin",
		Role:     string(identity.RoleTenantAdmin),
	})
	require.NoError(t, err)

	r, _ := setupRouter(DefaultJWTConfig(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.RefreshToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_BlacklistedTokenRejected(t *testing.T) {
	svc := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()

	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "admin",
		Role:     string(identity.RoleTenantAdmin),
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	r, _ := setupRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_SkipPathBypassesAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(newTestJWTService()))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
