// Package config loads the contact book settings from the environment.
//
// Variables carry the CONTACTS_ prefix and underscores separate the nesting levels, e.g.
// CONTACTS_DATABASE_DRIVER maps to Config.Database.Driver. A `.env` file in the working directory
// is loaded into the environment before anything is read.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Prefix is the common prefix of all environment variables read by Load.
const Prefix = "CONTACTS_"

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config is the root configuration object.
type Config struct {
	Platform PlatformConfig `koanf:"platform"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
}

// PlatformConfig describes the host the application runs on.
//
// Native reports whether a native database is available. When it is false the in-memory mock
// store is used instead, as in a browser preview.
type PlatformConfig struct {
	Native bool `koanf:"native"`
}

// DatabaseConfig tells where the native database lives. The database name itself is fixed.
type DatabaseConfig struct {
	Driver   string `koanf:"driver"   validate:"oneof=sqlite mysql"`
	Dir      string `koanf:"dir"      validate:"required_if=Driver sqlite"`
	Host     string `koanf:"host"     validate:"required_if=Driver mysql"`
	User     string `koanf:"user"     validate:"required_if=Driver mysql"`
	Password string `koanf:"password"`
}

// ServerConfig groups the settings of the HTTP service.
type ServerConfig struct {
	Port    int  `koanf:"port"    validate:"min=1,max=65535"`
	Logging bool `koanf:"logging"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// Default returns the configuration used for every value that is not set in the environment.
func Default() *Config {
	return &Config{
		Platform: PlatformConfig{Native: true},
		Database: DatabaseConfig{Driver: DriverSQLite, Dir: "data"},
		Server:   ServerConfig{Port: 8080, Logging: true},
		Log:      LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads the environment on top of the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(Prefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, Prefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
