// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file,
// when present), loads them into structured Go types and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults so a bare checkout runs against a local SQLite file.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the STARWARS_ prefix. Keys are lowercased, the
	prefix is removed and a double underscore marks nesting:

	  STARWARS_SERVER__PORT          -> server.port         -> Config.Server.Port
	  STARWARS_DATABASE__AUTO_MIGRATE -> database.auto_migrate

	Two unprefixed variables are honoured for deployments that predate the
	prefix: DATABASE_URL and PORT.
*/

// EnvPrefix is the prefix shared by every application variable.
const EnvPrefix = "STARWARS_"

// aliases maps unprefixed environment variables onto koanf keys.
var aliases = map[string]string{
	"DATABASE_URL": "database.url",
	"PORT":         "server.port",
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained number of requests per second allowed per
	// client IP. Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig holds the connection string and pool tuning.
//
// URL selects the store:
//   - empty, "sqlite://<path>" or "file:<path>" -> SQLite file (SQLitePath when empty)
//   - "postgres://..." or "postgresql://..."     -> PostgreSQL
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	SQLitePath      string `koanf:"sqlite_path" validate:"required"`
	AutoMigrate     bool   `koanf:"auto_migrate"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
		},
		Database: DatabaseConfig{
			SQLitePath:      "/tmp/test.db",
			AutoMigrate:     true,
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix STARWARS_ (double underscore = nesting)
//   - Loads the DATABASE_URL and PORT aliases
//   - Unmarshals into Config, keeping defaults for keys that are absent
//   - Validates required config blocks/fields
//   - Overrides observability service name + environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load environment variables: %w", err)
	}

	// Aliases are loaded last: DATABASE_URL wins over STARWARS_DATABASE__URL.
	for name, key := range aliases {
		err := k.Load(env.Provider(name, ".", func(s string) string {
			if s != name {
				return ""
			}
			return key
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("could not load %s: %w", name, err)
		}
	}

	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are always derived, never configured.
	mainConfig.Observability.ServiceName = "starwars-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// Driver reports which store the configuration points at: "postgres" or "sqlite".
func (d DatabaseConfig) Driver() string {
	switch {
	case strings.HasPrefix(d.URL, "postgres://"), strings.HasPrefix(d.URL, "postgresql://"):
		return "postgres"
	default:
		return "sqlite"
	}
}

// PostgresURL returns the connection string with the legacy "postgres://"
// scheme rewritten to "postgresql://".
func (d DatabaseConfig) PostgresURL() string {
	return strings.Replace(d.URL, "postgres://", "postgresql://", 1)
}

// SQLiteDSN returns the driver DSN for the SQLite file store.
//
// Foreign keys are switched on for every connection; SQLite leaves them off
// by default.
func (d DatabaseConfig) SQLiteDSN() string {
	path := d.SQLitePath
	switch {
	case strings.HasPrefix(d.URL, "sqlite://"):
		path = strings.TrimPrefix(d.URL, "sqlite://")
	case strings.HasPrefix(d.URL, "file:"):
		path = strings.TrimPrefix(d.URL, "file:")
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
