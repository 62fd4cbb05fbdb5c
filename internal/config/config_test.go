package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_PORT", "APP_EXPOSE_INTERNAL_ERRORS", "STORE_DRIVER", "POSTGRES_DSN",
		"AUTH_JWT_SECRET", "AUTH_ACCESS_TOKEN_TTL_MINUTES", "AUTH_PASSWORD_RESET_TTL_MINUTES",
		"AUTH_BCRYPT_COST", "SMTP_TLS_POLICY", "SOCIAL_GOOGLE_CLIENT_ID", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.App.ExposeInternalErrors)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "users", cfg.Mongo.Collection)
	assert.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 30*time.Minute, cfg.Auth.PasswordResetTTL())
	assert.Equal(t, "noreply@alumniconnect.com", cfg.SMTP.From)
	assert.Empty(t, cfg.Social.GoogleClientID)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/alumni")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.False(t, cfg.App.ExposeInternalErrors)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
}

func TestLoadRequiresSecretOutsideDevelopment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Store: StoreConfig{Driver: StoreDriverMongo},
			Auth:  AuthConfig{JWTSecret: "k", BcryptCost: 10},
			SMTP:  SMTPConfig{TLSPolicy: "opportunistic"},
		}
	}

	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Store.Driver = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "STORE_DRIVER")

	cfg = base()
	cfg.Store.Driver = StoreDriverPostgres
	assert.ErrorContains(t, cfg.Validate(), "POSTGRES_DSN")

	cfg = base()
	cfg.Auth.BcryptCost = 99
	assert.ErrorContains(t, cfg.Validate(), "AUTH_BCRYPT_COST")

	cfg = base()
	cfg.SMTP.TLSPolicy = "sometimes"
	assert.ErrorContains(t, cfg.Validate(), "SMTP_TLS_POLICY")
}
