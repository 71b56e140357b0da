package postgres

import "github.com/jmoiron/sqlx"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS catalogs (
		pharmacy   TEXT PRIMARY KEY,
		categories JSONB NOT NULL DEFAULT '{}'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS price_history (
		pharmacy  TEXT PRIMARY KEY,
		snapshots JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id               UUID PRIMARY KEY,
		user_email       TEXT NOT NULL,
		medicine_id      TEXT,
		medicine_name    TEXT NOT NULL,
		medicine_slug    TEXT,
		medicine_url     TEXT,
		image            TEXT,
		pharmacy         TEXT NOT NULL,
		category         TEXT NOT NULL,
		last_known_price BIGINT NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS alerts_user_email_idx ON alerts (user_email)`,
	`CREATE TABLE IF NOT EXISTS frequent_medicines (
		id            UUID PRIMARY KEY,
		user_email    TEXT NOT NULL,
		medicine_id   TEXT,
		medicine_name TEXT NOT NULL,
		medicine_slug TEXT,
		medicine_url  TEXT,
		image         TEXT,
		pharmacy      TEXT NOT NULL,
		category      TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS frequent_medicines_user_email_idx ON frequent_medicines (user_email)`,
}

// Migrate creates the tables this service owns. Statements are idempotent so
// it is safe to run on every start.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
