package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "STORE_BACKEND", "DB_DSN", "MIGRATE_ON_START", "REMINDER_CRON",
		"HTTP_READ_TIMEOUT", "TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_WHATSAPP_FROM",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.False(t, cfg.TwilioEnabled())
	assert.Equal(t, "0 9 * * *", cfg.ReminderCron)
	assert.True(t, cfg.RemindersEnabled())
}

func TestFromEnv_DSNSelectsPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://localhost/grooming")
	t.Setenv("MIGRATE_ON_START", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.True(t, cfg.MigrateOnStart)
}

func TestFromEnv_ExplicitMemoryWinsOverDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://localhost/grooming")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
}

func TestFromEnv_PostgresRequiresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "redis")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestGetDuration_SecondsWithoutSuffix(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_READ_TIMEOUT", "30")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}
