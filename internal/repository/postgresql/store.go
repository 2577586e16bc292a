package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parking_lot/internal/repository"
)

// queryer is satisfied by both *sql.DB and *sql.Tx, so the same repository
// code serves plain reads and transactional units.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type pgStore struct {
	db *sql.DB
	q  queryer
}

func NewStore(db *sql.DB) repository.Store {
	return &pgStore{db: db, q: db}
}

func (s *pgStore) Spots() repository.ParkingSpotRepository {
	return &pgParkingSpotRepository{q: s.q}
}

func (s *pgStore) Vehicles() repository.VehicleRepository {
	return &pgVehicleRepository{q: s.q}
}

func (s *pgStore) Sessions() repository.ParkingSessionRepository {
	return &pgParkingSessionRepository{q: s.q}
}

func (s *pgStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if _, inTx := s.q.(*sql.Tx); inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(&pgStore{db: s.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
