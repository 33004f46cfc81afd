package config

import (
	"errors"
	"fmt"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration read from the environment (and .env).
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"mesinkasir"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBLogLevel  string `envconfig:"DB_LOG_LEVEL" default:"warn"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	Timezone    string `envconfig:"APP_TIMEZONE" default:"Asia/Jakarta"`
	CORSOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	SeedAdminEmail    string `envconfig:"SEED_ADMIN_EMAIL" default:"admin@kasir.com"`
	SeedAdminPassword string `envconfig:"SEED_ADMIN_PASSWORD" default:"admin12345"`

	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	return FromEnv()
}

// FromEnv processes the environment without touching .env files.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET must be at least 32 characters")
	}
	if cfg.JWTTTL <= 0 {
		return nil, errors.New("JWT_TTL must be positive")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN returns DATABASE_URL or a key/value DSN assembled from the DB_* fields.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.Timezone,
	)
}

// Location resolves the business timezone used for date filters.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
