package sqlengine

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the connection settings for one invocation. It is built
// once by layering built-in defaults, then DB_* environment variables,
// then explicit overrides, and passed by value from then on.
type Config struct {
	Engine   string
	Name     string
	Username string
	Password string
	Host     string
	Port     int64
}

const (
	DefaultName     = "myapp_db"
	DefaultUsername = "myapp_user"
	DefaultPassword = "changeme123"
	DefaultHost     = "localhost"
)

// NewConfig returns the configuration for the given engine with defaults
// applied and DB_NAME, DB_USER, DB_PASSWORD, DB_HOST and DB_PORT
// environment variables layered on top.
func NewConfig(engine string) Config {
	config := Config{
		Engine:   engine,
		Name:     envOrDefault("DB_NAME", DefaultName),
		Username: envOrDefault("DB_USER", DefaultUsername),
		Password: envOrDefault("DB_PASSWORD", DefaultPassword),
		Host:     envOrDefault("DB_HOST", DefaultHost),
		Port:     defaultPort(engine),
	}

	if value := os.Getenv("DB_PORT"); value != "" {
		if port, err := strconv.ParseInt(value, 10, 64); err == nil {
			config.Port = port
		}
	}

	return config
}

// Validate config
func (c Config) Validate() error {
	if c.Engine == "" {
		return errors.New("Must provide a non-empty Engine")
	}

	if c.Name == "" {
		return errors.New("Must provide a non-empty Name")
	}

	if c.Username == "" {
		return errors.New("Must provide a non-empty Username")
	}

	if c.Password == "" {
		return errors.New("Must provide a non-empty Password")
	}

	if c.Host == "" {
		return errors.New("Must provide a non-empty Host")
	}

	if c.Port <= 0 {
		return errors.New("Must provide a positive Port")
	}

	return nil
}

func defaultPort(engine string) int64 {
	switch engine {
	case "mysql", "mariadb":
		return 3306
	}

	return 5432
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
