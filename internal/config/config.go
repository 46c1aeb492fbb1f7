package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend names a record store implementation.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
	BackendDynamoDB Backend = "dynamodb"
	BackendMemory   Backend = "memory"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Spendwise"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Store struct {
		Backend Backend `envconfig:"STORE_BACKEND" default:"postgres"`
		Migrate bool    `envconfig:"STORE_MIGRATE" default:"true"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"spendwise"`
	}

	SQLite struct {
		Path string `envconfig:"SQLITE_PATH" default:"./data/spendwise.db"`
	}

	Dynamo struct {
		Region      string `envconfig:"AWS_REGION" default:"us-east-1"`
		Table       string `envconfig:"EXPENSES_TABLE" default:"Expenses"`
		Endpoint    string `envconfig:"DYNAMODB_ENDPOINT"`
		CreateTable bool   `envconfig:"DYNAMODB_CREATE_TABLE" default:"false"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
		Issuer    string `envconfig:"JWT_ISSUER"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	TUI struct {
		Owner string `envconfig:"TUI_OWNER"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendPostgres, BackendSQLite, BackendDynamoDB, BackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: want postgres, sqlite, dynamodb or memory", c.Store.Backend)
	}

	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.App.Port)
	}

	return nil
}
