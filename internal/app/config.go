package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/construinmuniza/cotizador/internal/extract"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"60s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"90s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	AgentEndpoint    string        `envconfig:"AGENT_ENDPOINT" required:"true"`
	AgentAccessKey   string        `envconfig:"AGENT_ACCESS_KEY" required:"true"`
	AgentTimeout     time.Duration `envconfig:"AGENT_TIMEOUT" default:"60s"`
	AgentTemperature float64       `envconfig:"AGENT_TEMPERATURE" default:"0.7"`
	AgentMaxTokens   int           `envconfig:"AGENT_MAX_TOKENS" default:"1000"`

	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`

	// Extraction bounds. Defaults are the values the heuristics were tuned
	// with; see extract.DefaultConfig.
	PriceFloor       int64 `envconfig:"PRICE_FLOOR" default:"1000"`
	PriceCeiling     int64 `envconfig:"PRICE_CEILING" default:"50000000"`
	QuantityMax      int64 `envconfig:"QUANTITY_MAX" default:"1000"`
	TolerancePercent int64 `envconfig:"TOLERANCE_PERCENT" default:"10"`

	ValidityDays int `envconfig:"VALIDITY_DAYS" default:"30"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.AgentEndpoint == "" {
		return nil, errors.New("agent endpoint must be provided")
	}
	if cfg.AgentAccessKey == "" {
		return nil, errors.New("agent access key must be provided")
	}
	return &cfg, nil
}

// ExtractConfig maps the configured bounds onto the extractor's knobs.
func (c *Config) ExtractConfig() extract.Config {
	ec := extract.DefaultConfig()
	if c == nil {
		return ec
	}
	if c.PriceFloor > 0 {
		ec.MinPrice = c.PriceFloor
	}
	if c.PriceCeiling > 0 {
		ec.MaxPrice = c.PriceCeiling
	}
	if c.QuantityMax > 0 {
		ec.MaxQuantity = c.QuantityMax
	}
	if c.TolerancePercent > 0 {
		ec.TolerancePercent = c.TolerancePercent
	}
	return ec
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
