package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"parking_lot/internal/domain"
	"parking_lot/internal/metrics"
	"parking_lot/internal/repository"
)

// ParkingService implements spot allocation, settlement and availability
// reporting over the transactional store. The store's transaction mechanism is
// the only concurrency control; the service holds no state of its own.
type ParkingService struct {
	store     repository.Store
	feePolicy *FeePolicy

	now func() time.Time
}

func NewParkingService(store repository.Store, feePolicy *FeePolicy) *ParkingService {
	return &ParkingService{
		store:     store,
		feePolicy: feePolicy,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// VehicleEntry allocates one available spot of the requested type and opens an
// active session, all in a single transaction. Either exactly one spot turns
// unavailable and one session is created, or nothing changes.
func (s *ParkingService) VehicleEntry(ctx context.Context, dto domain.VehicleEntryDTO) (*domain.EntryResultDTO, error) {
	vehicleType := domain.VehicleType(dto.VehicleType)

	var result *domain.EntryResultDTO
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		spot, err := tx.Spots().FindFirstAvailableByType(ctx, vehicleType)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s", repository.ErrNoSpotAvailable, vehicleType)
			}
			return fmt.Errorf("finding available spot: %w", err)
		}

		if err := tx.Spots().UpdateAvailability(ctx, spot.ID, false); err != nil {
			return fmt.Errorf("marking spot %d occupied: %w", spot.ID, err)
		}

		vehicle, err := s.findOrCreateVehicle(ctx, tx, dto.LicensePlate, vehicleType)
		if err != nil {
			return err
		}

		session, err := tx.Sessions().Create(ctx, &domain.ParkingSession{
			TicketCode: uuid.NewString(),
			VehicleID:  vehicle.ID,
			SpotID:     spot.ID,
			EntryTime:  s.now(),
			Status:     domain.SessionActive,
		})
		if err != nil {
			return fmt.Errorf("creating parking session: %w", err)
		}

		result = &domain.EntryResultDTO{
			SessionID:   session.ID,
			TicketCode:  session.TicketCode,
			SpotID:      spot.ID,
			FloorNumber: spot.FloorNumber,
			SpotNumber:  spot.SpotNumber,
		}
		return nil
	})
	if err != nil {
		metrics.EntriesTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.EntriesTotal.WithLabelValues("success").Inc()
	log.Info().
		Int("session_id", result.SessionID).
		Int("spot_id", result.SpotID).
		Str("license_plate", dto.LicensePlate).
		Str("vehicle_type", dto.VehicleType).
		Msg("vehicle entered")
	return result, nil
}

// findOrCreateVehicle resolves a plate to its registered vehicle, creating one
// on first entry. A plate keeps the type it was first registered with.
func (s *ParkingService) findOrCreateVehicle(ctx context.Context, tx repository.Store, licensePlate string, declaredType domain.VehicleType) (*domain.Vehicle, error) {
	vehicle, err := tx.Vehicles().FindByPlate(ctx, licensePlate)
	if err == nil {
		if vehicle.VehicleType != declaredType {
			log.Warn().
				Str("license_plate", licensePlate).
				Str("registered_type", string(vehicle.VehicleType)).
				Str("declared_type", string(declaredType)).
				Msg("declared vehicle type differs from registered type, keeping registered type")
		}
		return vehicle, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up vehicle: %w", err)
	}

	created, err := tx.Vehicles().Create(ctx, &domain.Vehicle{
		LicensePlate: licensePlate,
		VehicleType:  declaredType,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			// Lost an insert race against a concurrent entry for the same plate.
			return tx.Vehicles().FindByPlate(ctx, licensePlate)
		}
		return nil, fmt.Errorf("registering vehicle: %w", err)
	}
	return created, nil
}

// VehicleExit settles an active session: computes the fee, closes the session
// and releases its spot in a single transaction. Settling a session twice
// fails with ErrNoActiveSession and changes nothing.
func (s *ParkingService) VehicleExit(ctx context.Context, sessionID int) (*domain.ExitResultDTO, error) {
	var result *domain.ExitResultDTO
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		session, err := tx.Sessions().FindActiveByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNoActiveSession) {
				return err
			}
			return fmt.Errorf("loading active session: %w", err)
		}

		exitTime := s.now()
		parked := exitTime.Sub(session.EntryTime)
		fee, err := s.feePolicy.FeeFor(session.VehicleType, parked)
		if err != nil {
			return err
		}
		durationMinutes := int64(math.Round(parked.Minutes()))

		if err := tx.Sessions().Close(ctx, session.ID, exitTime, durationMinutes, fee); err != nil {
			return fmt.Errorf("closing session %d: %w", session.ID, err)
		}
		if err := tx.Spots().UpdateAvailability(ctx, session.SpotID, true); err != nil {
			return fmt.Errorf("releasing spot %d: %w", session.SpotID, err)
		}

		result = &domain.ExitResultDTO{
			SessionID:       session.ID,
			Fee:             fee,
			DurationMinutes: durationMinutes,
		}
		return nil
	})
	if err != nil {
		metrics.ExitsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.ExitsTotal.WithLabelValues("success").Inc()
	log.Info().
		Int("session_id", result.SessionID).
		Float64("fee", result.Fee).
		Int64("duration_minutes", result.DurationMinutes).
		Msg("vehicle exited")
	return result, nil
}

// GetAvailability reports free-spot counts per type. Every known type appears,
// zero-filled when nothing is free. A plain read: staleness against an
// in-flight entry or exit is acceptable.
func (s *ParkingService) GetAvailability(ctx context.Context) (*domain.AvailabilityReport, error) {
	counts, err := s.store.Spots().CountAvailableByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting available spots: %w", err)
	}

	report := &domain.AvailabilityReport{
		ByType: make(map[domain.VehicleType]int, len(domain.AllVehicleTypes)),
	}
	for _, vehicleType := range domain.AllVehicleTypes {
		report.ByType[vehicleType] = 0
	}
	for vehicleType, count := range counts {
		report.ByType[vehicleType] = count
		report.TotalAvailable += count
	}
	for vehicleType, count := range report.ByType {
		metrics.AvailableSpots.WithLabelValues(string(vehicleType)).Set(float64(count))
	}
	return report, nil
}

func (s *ParkingService) GetParkingSessionByID(ctx context.Context, sessionID int) (*domain.ParkingSession, error) {
	return s.store.Sessions().FindByID(ctx, sessionID)
}
