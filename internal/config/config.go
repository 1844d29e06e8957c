package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string        `env:"SERVER_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	DatabaseURL         string        `env:"DATABASE_URL"`
	DB                  DBSettings    `envPrefix:"DB_"`
	DatabaseMaxConns    int32         `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	ConnectRetry        time.Duration `env:"DATABASE_CONNECT_RETRY" envDefault:"30s"`
	ReadRetryMaxElapsed time.Duration `env:"READ_RETRY_MAX_ELAPSED" envDefault:"2s"`
	MigrateOnStart      bool          `env:"MIGRATE_ON_START" envDefault:"false"`

	Redis          RedisSettings `envPrefix:"REDIS_"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	PurchaseTimeout          time.Duration `env:"PURCHASE_TIMEOUT" envDefault:"10s"`
	PurchaseTrustClientTotal bool          `env:"PURCHASE_TRUST_CLIENT_TOTAL" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// DBSettings are the discrete connection settings used when DATABASE_URL is not set.
type DBSettings struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type RedisSettings struct {
	// Addr empty means idempotency keys are kept in memory.
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// URL builds a postgres connection URL; it is empty when Host is not set.
func (s DBSettings) URL() string {
	if s.Host == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   s.Host + ":" + s.Port,
		Path:   "/" + s.Name,
	}
	if s.User != "" {
		u.User = url.UserPassword(s.User, s.Password)
	}
	if s.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {s.SSLMode}}.Encode()
	}
	return u.String()
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	return parse()
}

func parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.DB.URL()
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL or DB_HOST must be set")
	}
	if cfg.DatabaseMaxConns <= 0 {
		return nil, fmt.Errorf("DATABASE_MAX_CONNS must be positive, got %d", cfg.DatabaseMaxConns)
	}
	if cfg.PurchaseTimeout <= 0 {
		return nil, fmt.Errorf("PURCHASE_TIMEOUT must be positive, got %s", cfg.PurchaseTimeout)
	}

	return &cfg, nil
}
