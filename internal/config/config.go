// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Aramex
	Aramex AramexConfig `envconfig:"ARAMEX"`

	// Persistence
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Events
	KafkaBroker string `envconfig:"KAFKA_BROKER"`
	KafkaTopic  string `envconfig:"KAFKA_TOPIC" default:"aramex.shipments"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"aramexbridge"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// AramexConfig is read from the ARAMEX_ prefixed variables.
type AramexConfig struct {
	Username           string        `envconfig:"USERNAME"`
	Password           string        `envconfig:"PASSWORD"`
	AccountNumber      string        `envconfig:"ACCOUNT_NUMBER"`
	AccountPin         string        `envconfig:"ACCOUNT_PIN"`
	AccountEntity      string        `envconfig:"ACCOUNT_ENTITY"`
	AccountCountryCode string        `envconfig:"ACCOUNT_COUNTRY_CODE"`
	TestMode           bool          `envconfig:"TEST_MODE" default:"true"`
	BaseURL            string        `envconfig:"BASE_URL"`
	Timeout            time.Duration `envconfig:"TIMEOUT" default:"30s"`
	UseMock            bool          `envconfig:"USE_MOCK" default:"false"`
	SettingsFile       string        `envconfig:"SETTINGS_FILE"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("aramex.test_mode", c.Aramex.TestMode),
		attribute.Bool("aramex.use_mock", c.Aramex.UseMock),
		attribute.Bool("store.postgres", c.DatabaseURL != ""),
		attribute.Bool("events.kafka", c.KafkaBroker != ""),
	}
}
