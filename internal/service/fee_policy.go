package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"parking_lot/internal/domain"
)

// ErrUnknownVehicleType means a stored vehicle references a type with no
// configured hourly rate. That is a configuration problem, not a caller one.
var ErrUnknownVehicleType = errors.New("no hourly rate configured for vehicle type")

// FeePolicy is a pure mapping from vehicle type to per-hour rate, built once
// from configuration.
type FeePolicy struct {
	rates map[domain.VehicleType]float64
}

func NewFeePolicy(rates map[domain.VehicleType]float64) *FeePolicy {
	copied := make(map[domain.VehicleType]float64, len(rates))
	for vehicleType, rate := range rates {
		copied[vehicleType] = rate
	}
	return &FeePolicy{rates: copied}
}

func (p *FeePolicy) Rate(vehicleType domain.VehicleType) (float64, bool) {
	rate, ok := p.rates[vehicleType]
	return rate, ok
}

// FeeFor charges every started hour in full: ceil(hours) x rate. A
// zero-duration stay costs nothing.
func (p *FeePolicy) FeeFor(vehicleType domain.VehicleType, parked time.Duration) (float64, error) {
	rate, ok := p.rates[vehicleType]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVehicleType, vehicleType)
	}
	return math.Ceil(parked.Hours()) * rate, nil
}
