// Package config loads the service configuration from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port           string `env:"PORT,            default=8080"`
	Env            string `env:"ENV,             default=development"`
	LogLevel       string `env:"LOG_LEVEL,       default=info"`
	DefaultLocale  string `env:"DEFAULT_LOCALE,  default=ja"`
	BodyLimit      string `env:"BODY_LIMIT,      default=1M"`
	SwaggerEnabled bool   `env:"SWAGGER_ENABLED, default=true"`

	Store    StoreConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Hasher   HasherConfig
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=mongo"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=invoice_system"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN"`
}

// RedisConfig configures the session cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,          default=0"`
	TTL      time.Duration `env:"SESSION_CACHE_TTL, default=15m"`
}

type HasherConfig struct {
	Name       string `env:"PASSWORD_HASHER, default=bcrypt"`
	BcryptCost int    `env:"BCRYPT_COST,     default=10"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return loadWith(ctx, envconfig.OsLookuper())
}

func loadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch c.Store.Driver {
	case StoreMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo store"))
		}
	case StorePostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required for the postgres store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}

	switch c.Hasher.Name {
	case "bcrypt", "argon2id":
	default:
		errs = append(errs, fmt.Errorf("unknown PASSWORD_HASHER %q", c.Hasher.Name))
	}

	switch c.DefaultLocale {
	case "ja", "en":
	default:
		errs = append(errs, fmt.Errorf("unsupported DEFAULT_LOCALE %q", c.DefaultLocale))
	}

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	return errors.Join(errs...)
}
