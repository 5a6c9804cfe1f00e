package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  env: development
  jwt:
    secret: yaml-secret
mongo:
  uri: mongodb://localhost:27017
sms:
  provider: msg91
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	require.Equal(t, 3000, cfg.App.Port)
	require.Equal(t, 24, cfg.App.JWT.SessionHours)
	require.Equal(t, 10, cfg.Security.OtpTTLMinutes)
	require.Equal(t, 10, cfg.Security.PasswordHashCost)
	require.Equal(t, "users", cfg.User.Collection)
	require.Equal(t, 15*time.Second, cfg.Mongo.ConnectTimeout)
	require.Equal(t, 5*time.Second, cfg.Redis.ConnectTimeout)
	require.Equal(t, "msg91", cfg.SMS.Provider)
	require.False(t, cfg.Security.RequirePhoneVerification)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("OTP_TTL_MINUTES", "5")
	t.Setenv("REQUIRE_PHONE_VERIFICATION", "true")

	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.App.Port)
	require.Equal(t, "env-secret", cfg.App.JWT.Secret)
	require.Equal(t, 5, cfg.Security.OtpTTLMinutes)
	require.True(t, cfg.Security.RequirePhoneVerification)
}

func TestLoadPortAliases(t *testing.T) {
	t.Setenv("APP_PORT", "4000")
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)
	require.Equal(t, 4000, cfg.App.Port)

	// PORT wins when both are set
	t.Setenv("PORT", "5000")
	cfg, err = Load(writeConfig(t, testYAML))
	require.NoError(t, err)
	require.Equal(t, 5000, cfg.App.Port)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load(writeConfig(t, `
mongo:
  uri: mongodb://localhost:27017
`))
	require.Error(t, err)
}

func TestLoadMissingMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	_, err := Load(writeConfig(t, `
app:
  jwt:
    secret: s
`))
	require.Error(t, err)
}
