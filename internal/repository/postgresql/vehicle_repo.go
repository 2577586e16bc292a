package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"parking_lot/internal/domain"
	"parking_lot/internal/repository"
)

type pgVehicleRepository struct {
	q queryer
}

func (r *pgVehicleRepository) FindByPlate(ctx context.Context, licensePlate string) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{}
	query := `SELECT vehicle_id, license_plate, vehicle_type, created_at
	           FROM vehicles WHERE license_plate = $1`
	err := r.q.QueryRowContext(ctx, query, licensePlate).Scan(
		&vehicle.ID, &vehicle.LicensePlate, &vehicle.VehicleType, &vehicle.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("VehicleRepository.FindByPlate: %w", err)
	}
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	return vehicle, nil
}

func (r *pgVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `INSERT INTO vehicles (license_plate, vehicle_type, created_at)
	           VALUES ($1, $2, CURRENT_TIMESTAMP)
	           RETURNING vehicle_id, created_at`
	err := r.q.QueryRowContext(ctx, query, vehicle.LicensePlate, vehicle.VehicleType).Scan(
		&vehicle.ID, &vehicle.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: license plate '%s'", repository.ErrDuplicateEntry, vehicle.LicensePlate)
		}
		return nil, fmt.Errorf("VehicleRepository.Create: %w", err)
	}
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	return vehicle, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
