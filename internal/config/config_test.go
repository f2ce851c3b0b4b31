package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, 2323, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 428, cfg.ShareCard.Width)
	assert.Equal(t, 700, cfg.ShareCard.Height)
	assert.Equal(t, 3, cfg.ShareCard.PixelRatio)
	assert.Equal(t, "#f3e8ff", cfg.ShareCard.Background)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
content:
  endpoint: https://cms.example.com/graphql
  token: secret
  site_config_id: abc123
redis:
  url: localhost:6379
share_card:
  width: 400
  pixel_ratio: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "https://cms.example.com/graphql", cfg.Content.Endpoint)
	assert.Equal(t, "secret", cfg.Content.Token)
	assert.Equal(t, "abc123", cfg.Content.SiteConfigID)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, 400, cfg.ShareCard.Width)
	assert.Equal(t, 700, cfg.ShareCard.Height, "unset keys keep defaults")
	assert.Equal(t, 2, cfg.ShareCard.PixelRatio)
}

func TestEnvOverridesBeatYAML(t *testing.T) {
	path := writeConfig(t, `
content:
  endpoint: https://yaml.example.com/graphql
  site_config_id: from-yaml
`)

	t.Setenv(EnvContentEndpoint, "https://env.example.com/graphql")
	t.Setenv(EnvSiteConfigID, "from-env")
	t.Setenv(EnvContentToken, "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/graphql", cfg.Content.Endpoint)
	assert.Equal(t, "from-env", cfg.Content.SiteConfigID)
	assert.Equal(t, "env-token", cfg.Content.Token)
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "port: 99999\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadEndpoint(t *testing.T) {
	path := writeConfig(t, "content:\n  endpoint: '::not a url::'\n")
	_, err := Load(path)
	require.Error(t, err)
}
