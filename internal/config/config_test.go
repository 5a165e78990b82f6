package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "FR24_API_TOKEN", cfg.Provider.APITokenEnv)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9090

[logging]
level = "debug"

[provider]
api_token = "secret"
request_timeout_seconds = 5

[refdata]
sqlite_path = "ref.db"

[answers]
default_timezone = "America/New_York"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "secret", cfg.Provider.APIToken)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "ref.db", cfg.RefData.SQLitePath)
	assert.Equal(t, "America/New_York", cfg.Answers.DefaultTimezone)

	// Sections the file does not touch keep their defaults
	assert.Equal(t, "https://fr24api.flightradar24.com/api", cfg.Provider.BaseURL)
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = -1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")
}

func TestResolveAPIToken(t *testing.T) {
	cfg := Default()
	cfg.Provider.APITokenEnv = "FLIGHTQA_TEST_TOKEN"
	t.Setenv("FLIGHTQA_TEST_TOKEN", "from-env")
	assert.Equal(t, "from-env", cfg.ResolveAPIToken())

	// Config file value wins over the environment
	cfg.Provider.APIToken = "from-file"
	assert.Equal(t, "from-file", cfg.ResolveAPIToken())
}
