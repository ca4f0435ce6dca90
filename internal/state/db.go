// ./internal/state/db.go
package state

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"github.com/poolwatch/poolwatch/internal/config"
)

// DB is a global database connection pool.
var DB *sql.DB

// InitDB initializes the database connection pool.
func InitDB(cfg config.DBConfig) error {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	var err error
	DB, err = sql.Open("postgres", psqlInfo)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	err = DB.Ping()
	if err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("Successfully connected to the PostgreSQL database!")
	return nil
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		log.Info().Msg("Closing database connection...")
		if err := DB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database connection")
		}
	}
}

// EnsureSchema applies the necessary DDL to create tables if they don't exist.
func EnsureSchema() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	schemaSQL := `
		CREATE TABLE IF NOT EXISTS pools (
			pool_id VARCHAR(128) PRIMARY KEY,
			address VARCHAR(128) NOT NULL,
			pool_type VARCHAR(32) NOT NULL,
			swap_fee VARCHAR(64),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS pool_tokens (
			pool_id VARCHAR(128) NOT NULL REFERENCES pools(pool_id) ON DELETE CASCADE,
			token_index INTEGER NOT NULL,
			token_address VARCHAR(128) NOT NULL,
			raw_balance VARCHAR(96) NOT NULL,
			weight VARCHAR(64),
			price_rate VARCHAR(64),
			PRIMARY KEY (pool_id, token_index)
		);

		CREATE TABLE IF NOT EXISTS tokens (
			address VARCHAR(128) PRIMARY KEY,
			symbol VARCHAR(32) NOT NULL,
			decimals INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS prices (
			token_address VARCHAR(128) PRIMARY KEY,
			price_usd VARCHAR(64) NOT NULL,
			as_of TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS valuation_snapshots (
			snapshot_id SERIAL PRIMARY KEY,
			pool_id VARCHAR(128) NOT NULL,
			liquidity_usd VARCHAR(96) NOT NULL,
			computed_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_valuation_snapshots_pool ON valuation_snapshots(pool_id, computed_at DESC);
	`
	if _, err := DB.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	log.Info().Msg("Database schema ensured.")
	return nil
}
