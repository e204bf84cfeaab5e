package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("ADMIN_ID", "500")
	t.Setenv("DB_USER", "bot")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "applio")
	t.Setenv("APP_COOLDOWN_SECONDS", "300")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(500), cfg.AdminID)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 300, cfg.CooldownSeconds)
	assert.Equal(t, 500, cfg.MaxTextLength)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MissingBotToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AdminID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"Valid", "42", false},
		{"Empty", "", true},
		{"NotANumber", "abc", true},
		{"Zero", "0", true},
		{"Negative", "-5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("ADMIN_ID", tt.value)

			_, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_CooldownHasNoDefault(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_COOLDOWN_SECONDS", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MaxTextLength(t *testing.T) {
	t.Run("Override", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("MAX_TEXT_LENGTH", "1000")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 1000, cfg.MaxTextLength)
	})

	t.Run("Invalid", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("MAX_TEXT_LENGTH", "-1")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_SessionBackend(t *testing.T) {
	t.Run("RedisRequiresAddr", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SESSION_BACKEND", SessionBackendRedis)

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("RedisWithAddr", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SESSION_BACKEND", SessionBackendRedis)
		t.Setenv("REDIS_ADDR", "localhost:6379")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, SessionBackendRedis, cfg.SessionBackend)
	})

	t.Run("Unknown", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SESSION_BACKEND", "mongo")

		_, err := Load()
		assert.Error(t, err)
	})
}
