// Package config loads the exporter configuration.
//
// Values come from defaults, an optional YAML file and environment
// variables, in increasing order of precedence. Environment variables use
// the CACTUS_OPENAPI_ prefix (e.g., CACTUS_OPENAPI_LOG_LEVEL).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CACTUS_OPENAPI"

// Config holds the complete exporter configuration.
type Config struct {
	Log Log
}

// Log configures structured logging.
type Log struct {
	Level  string
	Format string
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the given YAML file path, then applies
// environment variable overrides. If path is empty, only defaults and
// environment variables are used.
func Load(path string) (Config, error) {
	def := Defaults()

	v := viper.New()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return def, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Log: Log{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		},
	}
	if err := validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func validate(cfg Config) error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", cfg.Log.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Log.Format] {
		errs = append(errs, fmt.Errorf("log.format must be json or text; got %q", cfg.Log.Format))
	}

	return errors.Join(errs...)
}
