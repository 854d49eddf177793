package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MEALIE_URL", "MEALIE_API_TOKEN", "MEALIE_TIMEOUT_SECONDS", "MCP_HTTP_ADDR", "LOG_LEVEL", "MEALIE_MCP_CONFIG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3333", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Empty(t, cfg.Credentials().BaseURL)
	assert.Empty(t, cfg.Credentials().APIToken)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEALIE_URL", "https://mealie.example.com")
	t.Setenv("MEALIE_API_TOKEN", "secret-token")
	t.Setenv("MEALIE_TIMEOUT_SECONDS", "10")
	t.Setenv("MCP_HTTP_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)

	creds := cfg.Credentials()
	assert.Equal(t, "https://mealie.example.com", creds.BaseURL)
	assert.Equal(t, "secret-token", creds.APIToken)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, ":9999", cfg.HTTPAddr)
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mealie:
  base_url: https://file.example.com
  api_token: file-token
  timeout: 45s
http_addr: ":4444"
log_level: debug
`), 0o644))
	t.Setenv("MEALIE_MCP_CONFIG", path)
	t.Setenv("MEALIE_URL", "https://env.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	// env wins over the file for the base URL, the rest comes from the file
	assert.Equal(t, "https://env.example.com", cfg.Credentials().BaseURL)
	assert.Equal(t, "file-token", cfg.Credentials().APIToken)
	assert.Equal(t, 45*time.Second, cfg.Timeout())
	assert.Equal(t, ":4444", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEALIE_TIMEOUT_SECONDS", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mealie: [not a map"), 0o644))
	t.Setenv("MEALIE_MCP_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}
