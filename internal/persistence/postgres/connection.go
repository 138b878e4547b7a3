package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Config controls the database connection pool.
type Config struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
}

// DefaultConfig returns conservative pool settings.
func DefaultConfig(dsn string) Config {
	return Config{
		DSN:             dsn,
		MaxOpenConns:    10,
		MaxIdleConns:    4,
		ConnMaxLifetime: 30 * time.Minute,
		QueryTimeout:    5 * time.Second,
	}
}

// Connect opens and pings a postgres pool.
func Connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	log.Info().Int("max_open_conns", cfg.MaxOpenConns).Msg("connected to postgres")
	return db, nil
}

// Schema is the DDL for the tables this package owns.
const Schema = `
CREATE TABLE IF NOT EXISTS contracts (
	player_id       TEXT PRIMARY KEY,
	team            TEXT NOT NULL,
	salary          BIGINT NOT NULL CHECK (salary >= 0),
	years_remaining INT NOT NULL,
	no_trade_clause BOOLEAN NOT NULL DEFAULT FALSE,
	signed_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS contracts_team_idx ON contracts (team);

CREATE TABLE IF NOT EXISTS draft_picks (
	year          INT NOT NULL,
	round         INT NOT NULL CHECK (round IN (1, 2)),
	original_team TEXT NOT NULL,
	owner         TEXT NOT NULL,
	protection    TEXT,
	PRIMARY KEY (year, round, original_team)
);

CREATE INDEX IF NOT EXISTS draft_picks_owner_idx ON draft_picks (owner);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
