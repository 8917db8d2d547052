package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBDriver string `env:"DB_DRIVER" envDefault:"postgres"`
	DBURL    string `env:"DB_URL"`

	// Auth0 issues RS256 tokens verified against the tenant's JWKS.
	Auth0Domain   string `env:"AUTH0_DOMAIN"`
	Auth0Audience string `env:"AUTH0_AUDIENCE" envDefault:"preptrack-api"`

	// When JWTSecretKey is set, tokens are HS256 with this issuer instead.
	JWTSecretKey string `env:"JWT_SECRET_KEY"`
	JWTIssuer    string `env:"JWT_ISSUER" envDefault:"preptrack-dev"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file outside production, then parses the environment.
func Load() (Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		if err := godotenv.Load(); err != nil {
			slog.Warn(".env file not found, using process environment", "error", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if cfg.DBURL == "" {
		return Config{}, errors.New("DB_URL is required")
	}
	if cfg.JWTSecretKey == "" && cfg.Auth0Domain == "" {
		return Config{}, errors.New("either AUTH0_DOMAIN or JWT_SECRET_KEY must be set")
	}
	return cfg, nil
}

// IsDevelopment reports whether tokens are signed locally rather than by Auth0.
func (c Config) IsDevelopment() bool {
	return c.JWTSecretKey != ""
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
