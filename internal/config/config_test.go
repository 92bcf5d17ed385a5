package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olbrain/alchemist-dashboard-sub002/dataaccess"
)

func TestDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "docker", cfg.Mode)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
}

func TestMissingExplicitPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alchemist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"mode: cloud\napi_url: https://api.example.com\napi_key: sk-from-file\n"), 0o600))

	t.Setenv("ALCHEMIST_API_KEY", "sk-from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cloud", cfg.Mode)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "sk-from-env", cfg.APIKey, "env overrides file")
}

func TestDataAccessMapping(t *testing.T) {
	cfg := &Config{
		Mode:     "cloud",
		APIURL:   "https://api.example.com",
		WatchURL: "wss://api.example.com/api/watch",
		APIKey:   "sk-1",
	}
	dac := cfg.DataAccess()
	assert.Equal(t, dataaccess.ModeCloud, dac.Mode)
	assert.True(t, dac.SupportsRealTimeSubscriptions())
}
