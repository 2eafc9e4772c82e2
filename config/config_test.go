package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OPENAI_API_KEY", "test-api-key")
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, defaultOpenAIAPIURL, cfg.OpenAIAPIURL)
		assert.Equal(t, "gpt-4.1-mini", cfg.OpenAIModel)
		assert.Equal(t, 24*time.Hour, cfg.AIUsageWindow)
		assert.Equal(t, 10, cfg.AIUsageLimit)
	})

	t.Run("reads quota overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("AI_USAGE_WINDOW", "1h")
		t.Setenv("AI_USAGE_LIMIT", "3")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, time.Hour, cfg.AIUsageWindow)
		assert.Equal(t, 3, cfg.AIUsageLimit)
	})

	t.Run("rejects malformed quota overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("AI_USAGE_WINDOW", "tomorrow")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without an API key", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("OPENAI_API_KEY_FILE", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("reads the API key from a secret file", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("OPENAI_API_KEY", "")

		keyFile := filepath.Join(t.TempDir(), "openai_api_key")
		require.NoError(t, os.WriteFile(keyFile, []byte("file-key\n"), 0o600))
		t.Setenv("OPENAI_API_KEY_FILE", keyFile)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.OpenAIAPIKey)
	})

	t.Run("fails without a JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("OPENAI_API_KEY", "test-api-key")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})
}
