package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SESSION_SECRET", "session-secret")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_RequiresSessionSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingSessionSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("ORIGIN", "http://localhost:5173")
	t.Setenv("FRONTEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.False(t, cfg.Production())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins())
	assert.Equal(t, "jwt-secret", cfg.JWTSecret)
}

func TestValidate_RejectsUnknownDrivers(t *testing.T) {
	cfg := &Config{JWTSecret: "a", SessionSecret: "b", DBDriver: "oracle", SessionStore: "redis", ImageStore: "database"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{JWTSecret: "a", SessionSecret: "b", DBDriver: "postgres", SessionStore: "redis", ImageStore: "ftp"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{JWTSecret: "a", SessionSecret: "b", DBDriver: "postgres", SessionStore: "cookie", ImageStore: "s3", GinMode: "release"}
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Production())
}

func TestValidate_RejectsUnknownSessionStore(t *testing.T) {
	cfg := &Config{JWTSecret: "a", SessionSecret: "b", DBDriver: "mysql", SessionStore: "cokie", ImageStore: "database"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_STORE")

	cfg.SessionStore = "redis"
	assert.NoError(t, cfg.Validate())
}
