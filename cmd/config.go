package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"orders/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort      string `env:"HTTP_PORT"      envDefault:"8080"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"     envDefault:"orders"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	KafkaBrokers         string `env:"KAFKA_BROKERS"`
	KafkaConsumerGroup   string `env:"KAFKA_CONSUMER_GROUP"   envDefault:"orders"`
	KafkaProcessingTopic string `env:"KAFKA_PROCESSING_TOPIC" envDefault:"order-processing"`
	KafkaLifecycleTopic  string `env:"KAFKA_LIFECYCLE_TOPIC"  envDefault:"order-lifecycle"`

	ConsumerMaxBatchSize   int           `env:"CONSUMER_MAX_BATCH_SIZE"  envDefault:"10"`
	ConsumerMaxBatchWait   time.Duration `env:"CONSUMER_MAX_BATCH_WAIT"  envDefault:"5s"`
	ConsumerPollTimeout    time.Duration `env:"CONSUMER_POLL_TIMEOUT"    envDefault:"100ms"`
	ConsumerRestartBackoff time.Duration `env:"CONSUMER_RESTART_BACKOFF" envDefault:"2s"`

	OutboxSchedule  string `env:"OUTBOX_SCHEDULE"   envDefault:"* * * * * *"`
	OutboxBatchSize int    `env:"OUTBOX_BATCH_SIZE" envDefault:"50"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads an optional .env file into the environment and parses Config from it.
// Variables already set in the environment win over the file.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !isNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error

	if strings.TrimSpace(c.HTTPPort) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DBHost == "" {
			errList = append(errList, errs.NewValueIsRequiredError("DB_HOST"))
		}
		if c.DBName == "" {
			errList = append(errList, errs.NewValueIsRequiredError("DB_NAME"))
		}
	case StorageDriverMemory:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("STORAGE_DRIVER",
			fmt.Errorf("%q is neither %s nor %s", c.StorageDriver, StorageDriverPostgres, StorageDriverMemory)))
	}

	if c.KafkaEnabled() {
		if c.KafkaConsumerGroup == "" {
			errList = append(errList, errs.NewValueIsRequiredError("KAFKA_CONSUMER_GROUP"))
		}
		if c.KafkaProcessingTopic == "" {
			errList = append(errList, errs.NewValueIsRequiredError("KAFKA_PROCESSING_TOPIC"))
		}
		if c.KafkaLifecycleTopic == "" {
			errList = append(errList, errs.NewValueIsRequiredError("KAFKA_LIFECYCLE_TOPIC"))
		}
	}

	if c.ConsumerMaxBatchSize <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("CONSUMER_MAX_BATCH_SIZE",
			fmt.Errorf("%d is not greater than 0", c.ConsumerMaxBatchSize)))
	}
	for name, d := range map[string]time.Duration{
		"CONSUMER_MAX_BATCH_WAIT":  c.ConsumerMaxBatchWait,
		"CONSUMER_POLL_TIMEOUT":    c.ConsumerPollTimeout,
		"CONSUMER_RESTART_BACKOFF": c.ConsumerRestartBackoff,
	} {
		if d <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%s is not greater than 0", d)))
		}
	}
	if c.ConsumerPollTimeout > c.ConsumerMaxBatchWait && c.ConsumerMaxBatchWait > 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("CONSUMER_POLL_TIMEOUT",
			fmt.Errorf("%s exceeds CONSUMER_MAX_BATCH_WAIT %s", c.ConsumerPollTimeout, c.ConsumerMaxBatchWait)))
	}

	if strings.TrimSpace(c.OutboxSchedule) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("OUTBOX_SCHEDULE"))
	}
	if c.OutboxBatchSize <= 0 || c.OutboxBatchSize > 1000 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("OUTBOX_BATCH_SIZE", c.OutboxBatchSize, 1, 1000))
	}

	if _, err := c.SlogLevel(); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}

// KafkaEnabled reports whether brokers are configured. Without them the consumer and
// the outbox relay do not run.
func (c Config) KafkaEnabled() bool {
	return strings.TrimSpace(c.KafkaBrokers) != ""
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}
	return level, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
