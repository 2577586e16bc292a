// Package memory provides a mutex-serialized repository.Store for tests. It
// mirrors the PostgreSQL store's semantics: WithinTx snapshots the state and
// restores it when the unit fails, so partial mutations never survive.
package memory

import (
	"context"
	"sync"
	"time"

	"parking_lot/internal/domain"
	"parking_lot/internal/repository"
)

type Store struct {
	mu sync.Mutex

	spots    map[int]domain.ParkingSpot
	vehicles map[int]domain.Vehicle
	sessions map[int]domain.ParkingSession

	nextSpotID    int
	nextVehicleID int
	nextSessionID int
}

func NewStore() *Store {
	return &Store{
		spots:         make(map[int]domain.ParkingSpot),
		vehicles:      make(map[int]domain.Vehicle),
		sessions:      make(map[int]domain.ParkingSession),
		nextSpotID:    1,
		nextVehicleID: 1,
		nextSessionID: 1,
	}
}

func (s *Store) Spots() repository.ParkingSpotRepository {
	return &spotRepo{s: s}
}

func (s *Store) Vehicles() repository.VehicleRepository {
	return &vehicleRepo{s: s}
}

func (s *Store) Sessions() repository.ParkingSessionRepository {
	return &sessionRepo{s: s}
}

// WithinTx holds the store lock for the whole unit, which serializes writers
// the way row locks do in Postgres.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.clone()
	if err := fn(&txStore{s: s}); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

// txStore exposes the same repositories without re-locking; the transaction
// already owns the store lock.
type txStore struct {
	s *Store
}

func (t *txStore) Spots() repository.ParkingSpotRepository {
	return &spotRepo{s: t.s, inTx: true}
}

func (t *txStore) Vehicles() repository.VehicleRepository {
	return &vehicleRepo{s: t.s, inTx: true}
}

func (t *txStore) Sessions() repository.ParkingSessionRepository {
	return &sessionRepo{s: t.s, inTx: true}
}

func (t *txStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(t)
}

type state struct {
	spots         map[int]domain.ParkingSpot
	vehicles      map[int]domain.Vehicle
	sessions      map[int]domain.ParkingSession
	nextSpotID    int
	nextVehicleID int
	nextSessionID int
}

func (s *Store) clone() state {
	snap := state{
		spots:         make(map[int]domain.ParkingSpot, len(s.spots)),
		vehicles:      make(map[int]domain.Vehicle, len(s.vehicles)),
		sessions:      make(map[int]domain.ParkingSession, len(s.sessions)),
		nextSpotID:    s.nextSpotID,
		nextVehicleID: s.nextVehicleID,
		nextSessionID: s.nextSessionID,
	}
	for id, spot := range s.spots {
		snap.spots[id] = spot
	}
	for id, vehicle := range s.vehicles {
		snap.vehicles[id] = vehicle
	}
	for id, session := range s.sessions {
		snap.sessions[id] = session
	}
	return snap
}

func (s *Store) restore(snap state) {
	s.spots = snap.spots
	s.vehicles = snap.vehicles
	s.sessions = snap.sessions
	s.nextSpotID = snap.nextSpotID
	s.nextVehicleID = snap.nextVehicleID
	s.nextSessionID = snap.nextSessionID
}

func now() time.Time {
	return time.Now().UTC()
}
