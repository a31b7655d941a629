// internal/config/config_test.go
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
	path := filepath.Join(t.TempDir(), "launchpad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
state_file: /var/lib/launchpad/state
seed_authority: J6y1b1KdTZRbPCe9kGDLUbcoRBjFMNXWJVRU4GfRBGNN
webhook_url: https://hooks.example.com/launchpad
development: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/launchpad/state", cfg.StateFile)
	assert.Equal(t, "J6y1b1KdTZRbPCe9kGDLUbcoRBjFMNXWJVRU4GfRBGNN", cfg.SeedAuthority)
	assert.Equal(t, "https://hooks.example.com/launchpad", cfg.WebhookURL)
	assert.True(t, cfg.Development)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
seed_authority: J6y1b1KdTZRbPCe9kGDLUbcoRBjFMNXWJVRU4GfRBGNN
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultStateFile, cfg.StateFile)
	assert.False(t, cfg.Development)
	assert.Empty(t, cfg.WebhookURL)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing seed authority", "development: true\n"},
		{"bad webhook scheme", "seed_authority: abc\nwebhook_url: ftp://example.com\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
