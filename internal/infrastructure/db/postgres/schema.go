package postgres

import (
	"context"
	"database/sql"

	"github.com/securitysvcs/auth-service/internal/domain"
)

// CreateSchema builds the two tables the service owns. Idempotent, so a
// restart against an existing database is safe.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	const accounts = `
CREATE TABLE IF NOT EXISTS accounts (
	username        TEXT PRIMARY KEY,
	password_hash   TEXT NOT NULL,
	role_level      INT NOT NULL DEFAULT 2,
	locked          BOOLEAN NOT NULL DEFAULT FALSE,
	failed_attempts INT NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	const events = `
CREATE TABLE IF NOT EXISTS auth_events (
	id          TEXT PRIMARY KEY,
	username    TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	description TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL
);
`
	const eventsIdx = `
CREATE INDEX IF NOT EXISTS auth_events_username_idx ON auth_events (username);
`
	for _, q := range []string{accounts, events, eventsIdx} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return domain.ErrStorageUnavailable(err)
		}
	}
	return nil
}

// DropSchema removes both tables. Only wired up behind DB_RESET in dev.
func DropSchema(ctx context.Context, db *sql.DB) error {
	const q = `DROP TABLE IF EXISTS auth_events, accounts;`

	if _, err := db.ExecContext(ctx, q); err != nil {
		return domain.ErrStorageUnavailable(err)
	}
	return nil
}
