package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to Postgres with the pool settings used across the bot.
func Open(databaseURL string) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the bot's tables when missing. Each statement is
// idempotent; per-user rows are keyed so single statements stay atomic.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS overwatch_profiles (
			account_id BIGINT PRIMARY KEY,
			btag       TEXT NOT NULL,
			mode       TEXT NOT NULL,
			region     TEXT NOT NULL,
			platform   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_overwatch_profiles_btag ON overwatch_profiles (btag)`,
		`CREATE TABLE IF NOT EXISTS xkcd_comics (
			num        INTEGER PRIMARY KEY,
			safe_title TEXT NOT NULL,
			alt        TEXT NOT NULL,
			img        TEXT NOT NULL,
			posted_on  DATE NOT NULL
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
