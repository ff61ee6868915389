// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the service settings.
type Config struct {
	Env         string
	LogLevel    string
	Addr        string
	DatabaseURL string
	UploadDir   string
	MaxUploadMB int64
}

// Load reads .env if present and then the process environment.
func Load() (Config, error) {
	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg := Config{
		Env:         os.Getenv("ENV"),
		LogLevel:    strings.ToLower(os.Getenv("LOGLEVEL")),
		Addr:        GetEnvWithDefault("PFSTRUCT_ADDR", ":8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		UploadDir:   GetEnvWithDefault("UPLOAD_DIR", os.TempDir()),
	}

	maxUpload, err := strconv.ParseInt(GetEnvWithDefault("MAX_UPLOAD_MB", "32"), 10, 64)
	if err != nil || maxUpload <= 0 {
		return cfg, fmt.Errorf("invalid MAX_UPLOAD_MB %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadMB = maxUpload

	SetupLogging(os.Stderr, cfg.Env, cfg.LogLevel)

	// wait until now to report on the .env file so we have the chance to set up logging first
	if envErr == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// SetupLogging configures zerolog output and the global log level.
func SetupLogging(out io.Writer, env, level string) {
	if env == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	zerolog.SetGlobalLevel(ParseLevel(env, level))
	if _, err := zerolog.ParseLevel(level); err != nil && level != "warning" {
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", level)
	}
}

// ParseLevel maps a LOGLEVEL value to a zerolog level. An empty value picks
// warn in production and info elsewhere.
func ParseLevel(env, level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "":
		if env == "production" {
			return zerolog.WarnLevel
		}
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	}
	if lvl, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
