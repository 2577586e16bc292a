package repository

import (
	"context"
	"errors"
	"time"

	"parking_lot/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")
var ErrNoSpotAvailable = errors.New("no available parking spot for this vehicle type")
var ErrNoActiveSession = errors.New("active parking session not found or already completed")

type ParkingSpotRepository interface {
	Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error)
	// FindFirstAvailableByType returns the free spot of the given type with the
	// lowest (floor_number, spot_number). Inside a transaction the row is
	// locked, so two concurrent allocations can never pick the same spot.
	FindFirstAvailableByType(ctx context.Context, spotType domain.VehicleType) (*domain.ParkingSpot, error)
	UpdateAvailability(ctx context.Context, spotID int, available bool) error
	CountAvailableByType(ctx context.Context) (map[domain.VehicleType]int, error)
	CountAll(ctx context.Context) (int, error)
}

type VehicleRepository interface {
	FindByPlate(ctx context.Context, licensePlate string) (*domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
}

type ParkingSessionRepository interface {
	Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error)
	FindByID(ctx context.Context, id int) (*domain.ParkingSession, error)
	// FindActiveByID loads an active session together with its vehicle's type,
	// locking the row. Returns ErrNoActiveSession when the session is absent or
	// already completed.
	FindActiveByID(ctx context.Context, id int) (*domain.ParkingSession, error)
	Close(ctx context.Context, id int, exitTime time.Time, durationMinutes int64, fee float64) error
}

// Store is the transactional record store shared by all components. There is
// no in-memory authoritative copy of any of this state; every operation reads
// it back through the store.
type Store interface {
	Spots() ParkingSpotRepository
	Vehicles() VehicleRepository
	Sessions() ParkingSessionRepository
	// WithinTx runs fn against a store whose repositories share a single
	// transaction. Any error from fn rolls the whole unit back; partial
	// mutations are never observable. Calling WithinTx from inside a
	// transaction joins the outer one.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
