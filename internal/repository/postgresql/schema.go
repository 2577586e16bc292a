package postgresql

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates the tables on first start. Statements are idempotent so
// restarting against an existing database is safe.
func InitSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS vehicles (
			vehicle_id SERIAL PRIMARY KEY,
			license_plate TEXT NOT NULL UNIQUE,
			vehicle_type TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS parking_spots (
			spot_id SERIAL PRIMARY KEY,
			floor_number INT NOT NULL,
			spot_number INT NOT NULL,
			spot_type TEXT NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (floor_number, spot_number)
		)`,
		`CREATE TABLE IF NOT EXISTS parking_sessions (
			id SERIAL PRIMARY KEY,
			ticket_code TEXT NOT NULL UNIQUE,
			vehicle_id INT NOT NULL REFERENCES vehicles (vehicle_id),
			spot_id INT NOT NULL REFERENCES parking_spots (spot_id),
			entry_time TIMESTAMPTZ NOT NULL,
			exit_time TIMESTAMPTZ,
			duration_minutes BIGINT,
			fee DOUBLE PRECISION,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parking_spots_free
			ON parking_spots (spot_type, floor_number, spot_number)
			WHERE is_available`,
		`CREATE INDEX IF NOT EXISTS idx_parking_sessions_status
			ON parking_sessions (status)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}
