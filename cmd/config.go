package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"restaurant/internal/adapters/out/changefeed"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/jobs"
	"restaurant/internal/pkg/errs"

	"github.com/joho/godotenv"
)

// Change feed drivers.
const (
	ChangeFeedMemory   = "memory"
	ChangeFeedPostgres = "postgres"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// PublicBaseURL is the customer-facing address encoded in table QR codes.
	PublicBaseURL string
	// Timezone is used for kitchen ticket timestamps.
	Timezone string

	ChangeFeedDriver  string
	ChangeFeedBuffer  int
	ChangeFeedChannel string

	// AMQPURL enables RabbitMQ push delivery; without it notifications are only logged.
	AMQPURL string

	RelayBatchSize  int
	OutboxRetention time.Duration
	CleanupSchedule string

	LogLevel  string
	LogFormat string
}

// LoadConfig reads the configuration from the environment. Variables from envFile are
// added when the file exists; variables already set in the environment win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var parseErrs []error
	intVar := func(key string, def int) int {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause(key, err))
		}
		return v
	}
	durationVar := func(key string, def time.Duration) time.Duration {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause(key, err))
		}
		return v
	}

	config := Config{
		HTTPPort:          envOr("HTTP_PORT", "8080"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            envOr("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         envOr("DB_SSLMODE", "disable"),
		PublicBaseURL:     os.Getenv("PUBLIC_BASE_URL"),
		Timezone:          envOr("TIMEZONE", "UTC"),
		ChangeFeedDriver:  envOr("CHANGEFEED_DRIVER", ChangeFeedMemory),
		ChangeFeedBuffer:  intVar("CHANGEFEED_BUFFER", changefeed.DefaultBuffer),
		ChangeFeedChannel: envOr("CHANGEFEED_CHANNEL", changefeed.DefaultChannel),
		AMQPURL:           os.Getenv("AMQP_URL"),
		RelayBatchSize:    intVar("RELAY_BATCH_SIZE", commands.DefaultRelayBatchSize),
		OutboxRetention:   durationVar("OUTBOX_RETENTION", jobs.DefaultOutboxRetention),
		CleanupSchedule:   envOr("OUTBOX_CLEANUP_SCHEDULE", jobs.DefaultCleanupSchedule),
		LogLevel:          envOr("LOG_LEVEL", "info"),
		LogFormat:         envOr("LOG_FORMAT", "text"),
	}

	if err := errors.Join(parseErrs...); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var problems []error

	for key, value := range map[string]string{
		"DB_HOST":         c.DBHost,
		"DB_USER":         c.DBUser,
		"DB_NAME":         c.DBName,
		"PUBLIC_BASE_URL": c.PublicBaseURL,
	} {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(key))
		}
	}

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("HTTP_PORT", c.HTTPPort, 1, 65535))
	}
	if c.PublicBaseURL != "" {
		if u, err := url.Parse(c.PublicBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, errs.NewValueIsInvalidError("PUBLIC_BASE_URL must be an absolute URL"))
		}
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("TIMEZONE", err))
	}
	if c.ChangeFeedDriver != ChangeFeedMemory && c.ChangeFeedDriver != ChangeFeedPostgres {
		problems = append(problems, errs.NewValueIsInvalidError("CHANGEFEED_DRIVER must be memory or postgres"))
	}
	if c.ChangeFeedBuffer <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("CHANGEFEED_BUFFER", c.ChangeFeedBuffer, 1, "unbounded"))
	}
	if _, err := commands.NewRelayOutboxCommand(c.RelayBatchSize); err != nil {
		problems = append(problems, err)
	}
	if _, err := commands.NewCleanupOutboxCommand(c.OutboxRetention); err != nil {
		problems = append(problems, err)
	}
	if _, err := slogLevel(c.LogLevel); err != nil {
		problems = append(problems, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		problems = append(problems, errs.NewValueIsInvalidError("LOG_FORMAT must be text or json"))
	}

	return errors.Join(problems...)
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location is the kitchen ticket time zone, UTC when unset or unknown.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NewLogger builds the application logger writing to w.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := slogLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func slogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}
	return level, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
