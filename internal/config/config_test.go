package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, "/api/v2/snippets", cfg.API.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout())
	assert.Equal(t, 3, cfg.Filters.MinLength)
	assert.Contains(t, cfg.Filters.ExcludePatterns, ".*token.*")
	assert.True(t, cfg.Filters.IncludeWorkingDir)
	assert.Equal(t, 10, cfg.Behavior.BatchSize)
	assert.False(t, cfg.Behavior.DryRun)
}

func TestLoad(t *testing.T) {
	t.Run("missing file is created with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("saved config round-trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		cfg := Default()
		cfg.API.BaseURL = "https://stash.example.com"
		cfg.Filters.MinLength = 5
		require.NoError(t, Save(path, cfg))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://stash.example.com", loaded.API.BaseURL)
		assert.Equal(t, 5, loaded.Filters.MinLength)
	})

	t.Run("partial file keeps defaults for missing keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://stash.example.com\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://stash.example.com", cfg.API.BaseURL)
		assert.Equal(t, 3, cfg.Filters.MinLength)
		assert.Equal(t, 10, cfg.Behavior.BatchSize)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestWizard(t *testing.T) {
	t.Run("empty input keeps current values", func(t *testing.T) {
		in := strings.NewReader("\n\n\n\n")
		var out strings.Builder

		cfg, err := runWizard(in, &out, Default())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("answers override settings", func(t *testing.T) {
		in := strings.NewReader("https://stash.example.com\nmy-key\n5\ntrue\n")
		var out strings.Builder

		cfg, err := runWizard(in, &out, Default())
		require.NoError(t, err)
		assert.Equal(t, "https://stash.example.com", cfg.API.BaseURL)
		assert.Equal(t, "my-key", cfg.API.APIKey)
		assert.Equal(t, 5, cfg.Filters.MinLength)
		assert.True(t, cfg.Behavior.AutoSend)
	})

	t.Run("existing api key is masked in the prompt", func(t *testing.T) {
		cfg := Default()
		cfg.API.APIKey = "abcd"
		in := strings.NewReader("\n\n\n\n")
		var out strings.Builder

		_, err := runWizard(in, &out, cfg)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "[****]")
		assert.NotContains(t, out.String(), "abcd")
	})
}
