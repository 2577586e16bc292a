package memory

import (
	"context"
	"time"

	"gopkg.in/guregu/null.v4"

	"parking_lot/internal/domain"
	"parking_lot/internal/repository"
)

type spotRepo struct {
	s    *Store
	inTx bool
}

func (r *spotRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *spotRepo) Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	defer r.lock()()
	stored := *spot
	stored.ID = r.s.nextSpotID
	stored.CreatedAt = now()
	r.s.nextSpotID++
	r.s.spots[stored.ID] = stored
	result := stored
	return &result, nil
}

func (r *spotRepo) FindFirstAvailableByType(ctx context.Context, spotType domain.VehicleType) (*domain.ParkingSpot, error) {
	defer r.lock()()
	var best *domain.ParkingSpot
	for id := range r.s.spots {
		spot := r.s.spots[id]
		if spot.SpotType != spotType || !spot.IsAvailable {
			continue
		}
		if best == nil || spot.FloorNumber < best.FloorNumber ||
			(spot.FloorNumber == best.FloorNumber && spot.SpotNumber < best.SpotNumber) {
			copied := spot
			best = &copied
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return best, nil
}

func (r *spotRepo) UpdateAvailability(ctx context.Context, spotID int, available bool) error {
	defer r.lock()()
	spot, ok := r.s.spots[spotID]
	if !ok {
		return repository.ErrNotFound
	}
	spot.IsAvailable = available
	r.s.spots[spotID] = spot
	return nil
}

func (r *spotRepo) CountAvailableByType(ctx context.Context) (map[domain.VehicleType]int, error) {
	defer r.lock()()
	counts := make(map[domain.VehicleType]int)
	for _, spot := range r.s.spots {
		if spot.IsAvailable {
			counts[spot.SpotType]++
		}
	}
	return counts, nil
}

func (r *spotRepo) CountAll(ctx context.Context) (int, error) {
	defer r.lock()()
	return len(r.s.spots), nil
}

type vehicleRepo struct {
	s    *Store
	inTx bool
}

func (r *vehicleRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *vehicleRepo) FindByPlate(ctx context.Context, licensePlate string) (*domain.Vehicle, error) {
	defer r.lock()()
	for _, vehicle := range r.s.vehicles {
		if vehicle.LicensePlate == licensePlate {
			copied := vehicle
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	defer r.lock()()
	for _, existing := range r.s.vehicles {
		if existing.LicensePlate == vehicle.LicensePlate {
			return nil, repository.ErrDuplicateEntry
		}
	}
	stored := *vehicle
	stored.ID = r.s.nextVehicleID
	stored.CreatedAt = now()
	r.s.nextVehicleID++
	r.s.vehicles[stored.ID] = stored
	result := stored
	return &result, nil
}

type sessionRepo struct {
	s    *Store
	inTx bool
}

func (r *sessionRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *sessionRepo) Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	defer r.lock()()
	stored := *session
	stored.ID = r.s.nextSessionID
	stored.CreatedAt = now()
	stored.UpdatedAt = stored.CreatedAt
	r.s.nextSessionID++
	r.s.sessions[stored.ID] = stored
	result := stored
	return &result, nil
}

func (r *sessionRepo) FindByID(ctx context.Context, id int) (*domain.ParkingSession, error) {
	defer r.lock()()
	session, ok := r.s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.withVehicleType(session), nil
}

func (r *sessionRepo) FindActiveByID(ctx context.Context, id int) (*domain.ParkingSession, error) {
	defer r.lock()()
	session, ok := r.s.sessions[id]
	if !ok || session.Status != domain.SessionActive {
		return nil, repository.ErrNoActiveSession
	}
	return r.withVehicleType(session), nil
}

func (r *sessionRepo) Close(ctx context.Context, id int, exitTime time.Time, durationMinutes int64, fee float64) error {
	defer r.lock()()
	session, ok := r.s.sessions[id]
	if !ok || session.Status != domain.SessionActive {
		return repository.ErrNoActiveSession
	}
	session.ExitTime = null.TimeFrom(exitTime)
	session.DurationMinutes = null.IntFrom(durationMinutes)
	session.Fee = null.FloatFrom(fee)
	session.Status = domain.SessionCompleted
	session.UpdatedAt = now()
	r.s.sessions[id] = session
	return nil
}

func (r *sessionRepo) withVehicleType(session domain.ParkingSession) *domain.ParkingSession {
	copied := session
	if vehicle, ok := r.s.vehicles[session.VehicleID]; ok {
		copied.VehicleType = vehicle.VehicleType
	}
	return &copied
}
