package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Хранилища, которые умеет поднимать сервис
const (
	StorageGorm   = "gorm"
	StorageSQL    = "sql"
	StorageMemory = "memory"
)

type Config struct {
	ServerPort     string `env:"SERVER_PORT" envDefault:"8080"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"gorm"`
	DBHost         string `env:"DB_HOST" envDefault:"localhost"`
	DBPort         int    `env:"DB_PORT" envDefault:"5432"`
	DBUser         string `env:"DB_USER" envDefault:"postgres"`
	DBPassword     string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName         string `env:"DB_NAME" envDefault:"groups_db"`
	DBSSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	SeedFile       string `env:"SEED_FILE"`
	AuthEnabled    bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AdminUsername  string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword  string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	JWTSecret      string `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`
	JWTExpiry      int    `env:"JWT_EXPIRY" envDefault:"24"` // в часах
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.StorageBackend {
	case StorageGorm, StorageSQL, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return &cfg, nil
}

// DSN собирает строку подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
