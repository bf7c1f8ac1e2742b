package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/jobs"
	"ordering/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	StorageDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	ReferenceCurrency     string
	FreeShippingThreshold decimal.Decimal
	DefaultStock          int

	JobsEnabled             bool
	DraftOrderTTL           time.Duration
	DraftExpirationSchedule string

	LogLevel slog.Level
}

// LoadConfig reads the configuration from the environment. Variables found in envFiles are
// loaded first without overriding the real environment; missing files are ignored.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := Config{
		StorageDriver:           strings.ToLower(envOr("STORAGE_DRIVER", StorageMemory)),
		DBHost:                  envOr("DB_HOST", "localhost"),
		DBPort:                  envOr("DB_PORT", "5432"),
		DBUser:                  envOr("DB_USER", "postgres"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  envOr("DB_NAME", "ordering"),
		DBSslMode:               envOr("DB_SSLMODE", "disable"),
		KafkaBrokers:            splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderEventsTopic:   envOr("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
		ReferenceCurrency:       strings.ToUpper(envOr("REFERENCE_CURRENCY", kernel.ReferenceCurrency)),
		DraftExpirationSchedule: envOr("DRAFT_EXPIRATION_SCHEDULE", jobs.DefaultDraftExpirationSchedule),
	}

	var err error
	var parseErrs []error

	if cfg.FreeShippingThreshold, err = decimal.NewFromString(envOr("FREE_SHIPPING_THRESHOLD", services.DefaultFreeShippingThreshold.String())); err != nil {
		parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("FREE_SHIPPING_THRESHOLD", err))
	}
	if cfg.DefaultStock, err = strconv.Atoi(envOr("DEFAULT_STOCK", "100")); err != nil {
		parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("DEFAULT_STOCK", err))
	}
	if cfg.JobsEnabled, err = strconv.ParseBool(envOr("JOBS_ENABLED", "false")); err != nil {
		parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("JOBS_ENABLED", err))
	}
	if cfg.DraftOrderTTL, err = time.ParseDuration(envOr("DRAFT_ORDER_TTL", "24h")); err != nil {
		parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("DRAFT_ORDER_TTL", err))
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}

	if err := errors.Join(parseErrs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var validationErrs []error

	if c.StorageDriver != StorageMemory && c.StorageDriver != StoragePostgres {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidError("STORAGE_DRIVER: "+c.StorageDriver))
	}
	if c.ReferenceCurrency == "" {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("REFERENCE_CURRENCY"))
	}
	if c.FreeShippingThreshold.IsNegative() {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("FREE_SHIPPING_THRESHOLD", c.FreeShippingThreshold, 0, "unbounded"))
	}
	if c.DefaultStock < 0 {
		validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError("DEFAULT_STOCK", c.DefaultStock, 0, "unbounded"))
	}
	if c.DraftOrderTTL <= 0 {
		validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError("DRAFT_ORDER_TTL", c.DraftOrderTTL, "1ns", "unbounded"))
	}

	return errors.Join(validationErrs...)
}

// PostgresDSN builds the key/value connection string understood by gorm.io/driver/postgres.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
