package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingJWTSecret))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "test_secret", cfg.JWT.Secret)
	assert.Equal(t, "24h0m0s", cfg.JWT.Expiration.String())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoadClampsBcryptCost(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, MinBcryptCost, cfg.Auth.BcryptCost)
}
