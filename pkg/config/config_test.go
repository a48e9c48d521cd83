package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := FromEnv(env(nil))

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Empty(t, cfg.PersonsTableName)
		assert.Empty(t, cfg.RedisURL)
		assert.Empty(t, cfg.WebhookQueueURL)
		assert.Equal(t, "mock-solaris-secret", cfg.WebhookSigningSecret)
		assert.Equal(t, 5*time.Second, cfg.WebhookTimeout)
		assert.Equal(t, time.Minute, cfg.FraudWatchdogTimeout)
		assert.Equal(t, 30*time.Minute, cfg.FraudCaseTTL)
		assert.Equal(t, 168*time.Hour, cfg.ReservationTTL)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	})

	t.Run("Overrides", func(t *testing.T) {
		cfg, err := FromEnv(env(map[string]string{
			"HTTP_PORT":                   "9090",
			"DYNAMODB_PERSONS_TABLE_NAME": "persons",
			"REDIS_URL":                   "redis://localhost:6379/0",
			"SQS_WEBHOOK_QUEUE_URL":       "https://sqs.eu-central-1.amazonaws.com/1/webhooks",
			"FRAUD_WATCHDOG_TIMEOUT_MS":   "1000",
			"FRAUD_CASE_TTL":              "1m",
			"LOG_LEVEL":                   "debug",
		}))

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, "persons", cfg.PersonsTableName)
		assert.Equal(t, time.Second, cfg.FraudWatchdogTimeout)
		assert.Equal(t, time.Minute, cfg.FraudCaseTTL)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	})

	t.Run("Timeout Too Short", func(t *testing.T) {
		_, err := FromEnv(env(map[string]string{"FRAUD_WATCHDOG_TIMEOUT_MS": "999"}))

		assert.ErrorIs(t, err, ErrTimeoutTooShort)
	})

	t.Run("Reports Every Invalid Variable", func(t *testing.T) {
		_, err := FromEnv(env(map[string]string{
			"FRAUD_CASE_TTL":            "soon",
			"RESERVATION_TTL":           "week",
			"FRAUD_WATCHDOG_TIMEOUT_MS": "1s",
			"LOG_LEVEL":                 "loud",
		}))

		require.Error(t, err)
		assert.Len(t, multierr.Errors(errorsCause(err)), 4)
	})
}

// errorsCause strips the outer "invalid configuration" wrapper.
func errorsCause(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return err
}
