package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("CORS_ORIGINS", "")

	conf, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", conf.Port)
	assert.Equal(t, 15*time.Minute, conf.JWTConfig.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, conf.JWTConfig.RefreshTokenExpiry)
	assert.Equal(t, []string{"http://localhost:4173", "http://localhost:5173"}, conf.CORSOrigins)
	assert.False(t, conf.SecureCookies)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5m")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("CLIENT_URL", "https://shop.example.com/")
	t.Setenv("CORS_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("APP_ENV", "production")

	conf, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, conf.JWTConfig.AccessTokenExpiry)
	assert.Equal(t, 2525, conf.EmailConfig.SMTPPort)
	assert.Equal(t, "https://shop.example.com", conf.ClientURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, conf.CORSOrigins)
	assert.True(t, conf.SecureCookies)
}

func TestLoadIgnoresBadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CLEANUP_INTERVAL", "soon")

	conf, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, conf.CleanupInterval)
}
