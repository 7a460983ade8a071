package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/RaajPratap/books-management-system/internal/utils"

	"github.com/ilyakaznacheev/cleanenv"
)

// durationSeconds parses env as time.Duration: "10s", "5m" or bare number = seconds (e.g. "10" -> 10s).
type durationSeconds time.Duration

// SetValue implements cleanenv.Setter.
func (d *durationSeconds) SetValue(data string) error {
	v, err := utils.ParseDurationEnv(data)
	if err != nil {
		return err
	}
	*d = durationSeconds(v)
	return nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	PG   PGConfig
	Auth AuthConfig
}

type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	Version  string `env:"VERSION" env-default:"dev"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

// IsDev reports whether the service runs in a local development setup.
func (a AppConfig) IsDev() bool {
	return a.Env == "" || a.Env == "dev" || a.Env == "local"
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"8800"`

	// Value: "10s", "5m" or a number of seconds without suffix (e.g. 10).
	ReadTimeout  durationSeconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout durationSeconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  durationSeconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`

	// RequestTimeout bounds every handler, including its store calls.
	RequestTimeout durationSeconds `env:"HTTP_REQUEST_TIMEOUT" env-default:"5s"`

	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" env-default:"*"`
}

type PGConfig struct {
	DSN string `env:"PG_DSN" env-required:"true"`
}

type AuthConfig struct {
	JWTSecret string          `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  durationSeconds `env:"JWT_TTL" env-default:"24h"`
}

// Origins returns the configured CORS origins.
func (h HTTPConfig) Origins() []string {
	origins := utils.SplitCSV(h.AllowOrigins)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must not be blank")
	}
	if cfg.Auth.TokenTTL.Duration() <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be positive")
	}
	if cfg.HTTP.RequestTimeout.Duration() <= 0 {
		return Config{}, fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive")
	}
	return cfg, nil
}
