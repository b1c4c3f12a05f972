package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Log formats.
const (
	LogJSON = "json"
	LogText = "text"
)

// Catalog sources.
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	AppEnv    string `env:"APP_ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`

	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"http"`
	CatalogURL    string `env:"CATALOG_URL" envDefault:"https://fakestoreapi.com/products"`
	DatabaseURL   string `env:"DATABASE_URL"`

	OTELEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Dev reports whether the process runs on a developer machine.
func (c Config) Dev() bool {
	return c.AppEnv == "dev"
}

// Load reads the optional .env files, then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.LogFormat != LogJSON && c.LogFormat != LogText {
		return fmt.Errorf("%w: unknown LOG_FORMAT %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.OTELSampleRatio < 0 || c.OTELSampleRatio > 1 {
		return fmt.Errorf("%w: OTEL_SAMPLE_RATIO must be within [0, 1]", ErrInvalidConfig)
	}

	switch c.CatalogSource {
	case SourceHTTP:
		if c.CatalogURL == "" {
			return fmt.Errorf("%w: CATALOG_URL is required for the http source", ErrInvalidConfig)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown CATALOG_SOURCE %q", ErrInvalidConfig, c.CatalogSource)
	}
	return nil
}
