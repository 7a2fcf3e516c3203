package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  port: "9090"
  jwt_signing_key: secret
  allowed_cors_domains: [http://example.org]
postgres:
  host: db
  user: club
stripe:
  secret_key: sk_test
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, []string{"http://example.org"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, 12*time.Hour, conf.API.JWTTTL)
	assert.Equal(t, "db", conf.Postgres.Host)
	assert.Equal(t, "postgres", conf.Postgres.Driver)
	assert.Equal(t, int64(22<<20), conf.Storage.MaxUploadBytes)
	assert.Equal(t, int64(40_000_000), conf.Storage.MaxThumbnailPixels)
	assert.Empty(t, conf.API.TrustedProxies)
	assert.Equal(t, time.Hour, conf.Reactions.CleanupInterval)
	assert.Equal(t, "EUR", conf.Donations.Currency)
	assert.Equal(t, "sk_test", conf.Stripe.SecretKey)
	assert.False(t, conf.Redis.Enabled)
	require.NotNil(t, conf.Admin)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
api:
  jwt_signing_key: secret
postgres:
  host: db
`)
	t.Setenv("CLUB_POSTGRES_HOST", "override")

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "override", conf.Postgres.Host)
}

func TestLoadRequiresSigningKey(t *testing.T) {
	path := writeConfig(t, `
postgres:
  host: db
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadTrustedProxies(t *testing.T) {
	path := writeConfig(t, `
api:
  jwt_signing_key: secret
  trusted_proxies: [10.0.0.0/8, 172.18.0.2]
postgres:
  host: db
`)

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "172.18.0.2"}, conf.API.TrustedProxies)

	path = writeConfig(t, `
api:
  jwt_signing_key: secret
  trusted_proxies: [reverse-proxy]
postgres:
  host: db
`)

	_, err = Load(path)
	assert.ErrorContains(t, err, "trusted_proxies")
}
