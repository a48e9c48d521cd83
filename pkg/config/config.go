package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// ErrTimeoutTooShort is returned when FRAUD_WATCHDOG_TIMEOUT_MS is below one second.
var ErrTimeoutTooShort = errors.New("FRAUD_WATCHDOG_TIMEOUT_MS must be at least 1000")

// Config is the runtime configuration shared by the binaries.
type Config struct {
	HTTPPort string

	// Empty selects the in-memory person store.
	PersonsTableName string
	// Empty selects the in-memory subscription store.
	RedisURL string
	// Empty delivers webhooks directly over HTTP.
	WebhookQueueURL string

	WebhookSigningSecret string
	WebhookTimeout       time.Duration

	FraudWatchdogTimeout time.Duration
	FraudCaseTTL         time.Duration
	ReservationTTL       time.Duration

	LogLevel slog.Level
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Every invalid variable is reported.
func FromEnv(getenv func(string) string) (*Config, error) {
	p := parser{getenv: getenv}

	cfg := &Config{
		HTTPPort:             p.str("HTTP_PORT", "8080"),
		PersonsTableName:     p.str("DYNAMODB_PERSONS_TABLE_NAME", ""),
		RedisURL:             p.str("REDIS_URL", ""),
		WebhookQueueURL:      p.str("SQS_WEBHOOK_QUEUE_URL", ""),
		WebhookSigningSecret: p.str("WEBHOOK_SIGNING_SECRET", "mock-solaris-secret"),
		WebhookTimeout:       p.duration("WEBHOOK_TIMEOUT", 5*time.Second),
		FraudWatchdogTimeout: p.millis("FRAUD_WATCHDOG_TIMEOUT_MS", 60*time.Second),
		FraudCaseTTL:         p.duration("FRAUD_CASE_TTL", 30*time.Minute),
		ReservationTTL:       p.duration("RESERVATION_TTL", 7*24*time.Hour),
		LogLevel:             p.level("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.FraudWatchdogTimeout < time.Second {
		p.err = multierr.Append(p.err, fmt.Errorf("%w: got %s", ErrTimeoutTooShort, cfg.FraudWatchdogTimeout))
	}

	if p.err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", p.err)
	}
	return cfg, nil
}

// Logger returns a JSON slog logger at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: c.LogLevel}))
}

type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.err = multierr.Append(p.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (p *parser) millis(key string, def time.Duration) time.Duration {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.err = multierr.Append(p.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func (p *parser) level(key string, def slog.Level) slog.Level {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		p.err = multierr.Append(p.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return l
}
