// Package config centralises configuration parsing for the tracker API.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the service. It is assembled once
// before the server starts and never mutated afterwards.
type Config struct {
	HTTPAddress    string   `env:"HTTP_ADDRESS" envDefault:":8080"`
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
	APIToken       string   `env:"API_TOKEN"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"natation"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"natation"`
	DBName     string `env:"DB_NAME" envDefault:"natation"`
	PoolSize   int    `env:"DB_POOL_SIZE" envDefault:"10"`
}

// Load reads environment variables into Config. A .env file in the working
// directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// DatabaseURL assembles the pgx connection string from the discrete fields.
// The pool size is carried in the URL so pgxpool picks it up directly.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&pool_max_conns=%d",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.PoolSize)
}
