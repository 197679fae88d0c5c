// Package config loads the application configuration.
//
// Values come from, in increasing priority:
//   - built-in defaults (Default)
//   - an optional YAML file named by CHATBOT_CONFIG_FILE
//   - environment variables prefixed with CHATBOT_ (a `.env` file is loaded
//     into the environment first)
//
// The result is validated so the app fails fast on bad config.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file, if present, into the process
	// environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/labstack/gommon/bytes"
)

const (
	// EnvPrefix is stripped from environment variable names before mapping.
	EnvPrefix = "CHATBOT_"

	// ConfigFileEnv names the environment variable holding the YAML file path.
	ConfigFileEnv = "CHATBOT_CONFIG_FILE"

	// ServiceName identifies this service in logs, traces and metrics.
	ServiceName = "daca-chatbot"
)

/*
	Env keys map onto koanf paths by dropping the prefix, lowercasing and
	turning double underscores into the "." delimiter:

	CHATBOT_SERVER__PORT                     -> server.port
	CHATBOT_OBSERVABILITY__LOGGING__LEVEL    -> observability.logging.level
	CHATBOT_SERVER__CORS_ALLOWED_ORIGINS=a,b -> server.cors_allowed_origins
*/

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary             `koanf:"primary" validate:"required"`
	Server        ServerConfig        `koanf:"server" validate:"required"`
	RateLimit     RateLimitConfig     `koanf:"rate_limit"`
	Observability ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"min=1s"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"min=1s"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// BodyLimit caps request bodies, in echo's size notation ("512K", "1M").
	BodyLimit string `koanf:"body_limit" validate:"required"`
}

// RateLimitConfig controls the per-client request limiter.
//
// Rate is in requests per second, Burst is how many requests may arrive at
// once, ExpiresIn is how long an idle client's bucket is kept.
type RateLimitConfig struct {
	Enabled   bool          `koanf:"enabled"`
	Rate      float64       `koanf:"rate" validate:"gte=0"`
	Burst     int           `koanf:"burst" validate:"gte=0"`
	ExpiresIn time.Duration `koanf:"expires_in" validate:"gte=0"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8000",
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        60 * time.Second,
			ShutdownTimeout:    15 * time.Second,
			CORSAllowedOrigins: []string{"*"},
			BodyLimit:          "1M",
		},
		RateLimit: RateLimitConfig{
			Enabled:   false,
			Rate:      10,
			Burst:     20,
			ExpiresIn: 3 * time.Minute,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// Load builds the configuration from defaults, the optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// Unmarshal on top of the defaults: keys absent from every source keep
	// their default value.
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := bytes.Parse(cfg.Server.BodyLimit); err != nil {
		return nil, fmt.Errorf("invalid server.body_limit %q: %w", cfg.Server.BodyLimit, err)
	}

	// Service name and environment are not configurable on their own.
	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
