// Package config loads runtime configuration from SDRDEMO_ prefixed
// environment variables (and a .env file, when present).
//
// Nested keys use "." as the delimiter after the prefix is removed, so
// SDRDEMO_SERVER.PORT maps to Config.Server.Port.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SDRDEMO_"

type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	BasePath     string        `koanf:"base_path" validate:"required,startswith=/"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"min=1s"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"min=1s"`

	// RequestTimeout bounds handler time and must be below WriteTimeout.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"min=1s,ltfield=WriteTimeout"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required,min=1,max=65535"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	Migrate         bool          `koanf:"migrate"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
	// Format is json or console.
	Format string `koanf:"format" validate:"required,oneof=json console"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.base_path":            "/sdrdemo/rest",
		"server.read_timeout":         "10s",
		"server.write_timeout":        "10s",
		"server.idle_timeout":         "60s",
		"server.request_timeout":      "9s",
		"database.host":               "localhost",
		"database.port":               3306,
		"database.user":               "root",
		"database.name":               "sdrdemo",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     25,
		"database.conn_max_lifetime":  "5m",
		"database.conn_max_idle_time": "5m",
		"database.migrate":            true,
		"logging.level":               "info",
		"logging.format":              "json",
	}
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}))
}

func load(provider koanf.Provider) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Server.BasePath = "/" + strings.Trim(cfg.Server.BasePath, "/")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
