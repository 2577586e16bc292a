package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parking_lot/internal/domain"
	"parking_lot/internal/repository"
)

type pgParkingSpotRepository struct {
	q queryer
}

func (r *pgParkingSpotRepository) Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	query := `INSERT INTO parking_spots (floor_number, spot_number, spot_type, is_available, created_at)
	           VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
	           RETURNING spot_id, created_at`
	err := r.q.QueryRowContext(ctx, query,
		spot.FloorNumber, spot.SpotNumber, spot.SpotType, spot.IsAvailable,
	).Scan(&spot.ID, &spot.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: spot %d on floor %d", repository.ErrDuplicateEntry, spot.SpotNumber, spot.FloorNumber)
		}
		return nil, fmt.Errorf("ParkingSpotRepository.Create: %w", err)
	}
	spot.CreatedAt = spot.CreatedAt.In(time.UTC)
	return spot, nil
}

func (r *pgParkingSpotRepository) FindFirstAvailableByType(ctx context.Context, spotType domain.VehicleType) (*domain.ParkingSpot, error) {
	spot := &domain.ParkingSpot{}
	// SKIP LOCKED makes concurrent allocations pick distinct rows instead of
	// queueing on the lowest spot.
	query := `SELECT spot_id, floor_number, spot_number, spot_type, is_available, created_at
	           FROM parking_spots
	           WHERE spot_type = $1 AND is_available = TRUE
	           ORDER BY floor_number, spot_number
	           LIMIT 1
	           FOR UPDATE SKIP LOCKED`

	err := r.q.QueryRowContext(ctx, query, spotType).Scan(
		&spot.ID, &spot.FloorNumber, &spot.SpotNumber, &spot.SpotType, &spot.IsAvailable, &spot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSpotRepository.FindFirstAvailableByType: %w", err)
	}
	spot.CreatedAt = spot.CreatedAt.In(time.UTC)
	return spot, nil
}

func (r *pgParkingSpotRepository) UpdateAvailability(ctx context.Context, spotID int, available bool) error {
	query := `UPDATE parking_spots SET is_available = $1 WHERE spot_id = $2`
	result, err := r.q.ExecContext(ctx, query, available, spotID)
	if err != nil {
		return fmt.Errorf("ParkingSpotRepository.UpdateAvailability: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ParkingSpotRepository.UpdateAvailability (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgParkingSpotRepository) CountAvailableByType(ctx context.Context) (map[domain.VehicleType]int, error) {
	query := `SELECT spot_type, COUNT(*)
	           FROM parking_spots
	           WHERE is_available = TRUE
	           GROUP BY spot_type`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ParkingSpotRepository.CountAvailableByType: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.VehicleType]int)
	for rows.Next() {
		var spotType domain.VehicleType
		var count int
		if err := rows.Scan(&spotType, &count); err != nil {
			return nil, fmt.Errorf("ParkingSpotRepository.CountAvailableByType (scanning row): %w", err)
		}
		counts[spotType] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSpotRepository.CountAvailableByType (rows error): %w", err)
	}
	return counts, nil
}

func (r *pgParkingSpotRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM parking_spots`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ParkingSpotRepository.CountAll: %w", err)
	}
	return count, nil
}
