package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.HTTPPort)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "gregorian", cfg.Calendar)
		assert.Equal(t, "postgres", cfg.KeySequence)
		assert.Equal(t, 20, cfg.MaxKeyAttempts)
		assert.Equal(t, 2*time.Second, cfg.PublisherPollInterval)
		assert.Nil(t, cfg.KafkaBrokers)
		assert.Equal(t, time.UTC, cfg.Location())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_PORT", "6543")
		t.Setenv("POSTGRES_DB", "shop")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
		t.Setenv("CALENDAR", "Jalali")
		t.Setenv("SECRET_KEY_SEQUENCE", "redis")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, "jalali", cfg.Calendar)
		assert.Equal(t, "redis", cfg.KeySequence)
		assert.Equal(t, 500*time.Millisecond, cfg.PublisherPollInterval)
		assert.Equal(t, "host=db port=6543 user=postgres password=postgres dbname=shop sslmode=disable", cfg.DB.DSN())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("redis sequence without address", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SECRET_KEY_SEQUENCE", "redis")
		t.Setenv("REDIS_ADDR", "")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "REDIS_ADDR")
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_PORT", "abc")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "DB_PORT")
	})

	t.Run("unknown calendar", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("CALENDAR", "lunar")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "CALENDAR")
	})
}
