package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "lms-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LMS_DATABASE_HOST", "db.internal")
	t.Setenv("LMS_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestDSN_EscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "lms",
		Password: "p@ss/word",
		DBName:   "lms",
		SSLMode:  "disable",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestValidate_ProductionRequiresSecrets(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.App.Env = "production"

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}
