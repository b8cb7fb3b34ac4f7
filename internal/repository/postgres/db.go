package postgres

import (
	"context"
	"database/sql"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// EnsureSchema creates the trip, company and driver tables if they do
// not exist. Dev convenience; production deployments migrate
// externally.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS companies (
			id         TEXT PRIMARY KEY,
			name       TEXT UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS drivers (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			vehicle_plate TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS trips (
			id              TEXT PRIMARY KEY,
			trip_date       TIMESTAMPTZ NOT NULL,
			client          TEXT NOT NULL,
			channel         TEXT NOT NULL,
			driver          TEXT NOT NULL,
			vehicle         TEXT NOT NULL,
			status          TEXT NOT NULL,
			fare            DOUBLE PRECISION NOT NULL,
			toll            DOUBLE PRECISION NOT NULL,
			commission_rate DOUBLE PRECISION NOT NULL,
			source          TEXT NOT NULL DEFAULT ''
		);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}
