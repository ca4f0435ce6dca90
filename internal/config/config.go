package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// AppConfig holds all application configuration loaded from environment
// variables. These are populated at startup by LoadConfig.
var (
	// WebPort is the HTTP port for the valuation API.
	WebPort string

	// FixturesPath, when set, points at a JSON fixture file and switches the
	// service to the in-memory static store instead of Postgres.
	FixturesPath string
)

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string // "disable", "require", "verify-full", etc.
}

// LoadConfig loads the general service configuration from environment
// variables. WebPort defaults to 8080; FixturesPath is optional.
func LoadConfig() error {
	log.Info().Msg("Loading application configuration from environment variables...")

	WebPort = os.Getenv("POOLWATCH_WEB_PORT")
	if WebPort == "" {
		WebPort = "8080"
	}
	FixturesPath = os.Getenv("POOLWATCH_FIXTURES")

	log.Debug().
		Str("WebPort", WebPort).
		Str("FixturesPath", FixturesPath).
		Msg("Configuration loaded successfully.")

	return nil
}

// LoadDBConfig loads Postgres connection parameters. All variables except
// DB_PORT and DB_SSLMODE are required.
func LoadDBConfig() (DBConfig, error) {
	host, err := getEnv("DB_HOST")
	if err != nil {
		return DBConfig{}, err
	}
	user, err := getEnv("DB_USER")
	if err != nil {
		return DBConfig{}, err
	}
	password, err := getEnv("DB_PASSWORD")
	if err != nil {
		return DBConfig{}, err
	}
	dbName, err := getEnv("DB_NAME")
	if err != nil {
		return DBConfig{}, err
	}

	port := 5432
	if portStr := os.Getenv("DB_PORT"); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return DBConfig{}, errors.New("environment variable DB_PORT must be a valid integer, got: " + portStr)
		}
	}
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	return DBConfig{
		Host: host, Port: port,
		User: user, Password: password,
		DBName: dbName, SSLMode: sslMode,
	}, nil
}

// getEnv retrieves a string environment variable. Returns error if not set.
func getEnv(key string) (string, error) {
	if value, exists := os.LookupEnv(key); exists {
		return value, nil
	}
	return "", errors.New("environment variable " + key + " is required but not set")
}
