package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking_lot/internal/domain"
)

func TestFeePolicy_FeeFor(t *testing.T) {
	policy := NewFeePolicy(map[domain.VehicleType]float64{
		domain.VehicleTypeMotorcycle: 2,
		domain.VehicleTypeCar:        5,
		domain.VehicleTypeBus:        10,
	})

	tests := []struct {
		name        string
		vehicleType domain.VehicleType
		parked      time.Duration
		want        float64
	}{
		{"car 90 minutes rounds up to 2 hours", domain.VehicleTypeCar, 90 * time.Minute, 10},
		{"car exactly one hour", domain.VehicleTypeCar, time.Hour, 5},
		{"car one second past the hour", domain.VehicleTypeCar, time.Hour + time.Second, 10},
		{"motorcycle short stay charges one hour", domain.VehicleTypeMotorcycle, 5 * time.Minute, 2},
		{"bus full day", domain.VehicleTypeBus, 24 * time.Hour, 240},
		{"zero duration costs nothing", domain.VehicleTypeCar, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := policy.FeeFor(tt.vehicleType, tt.parked)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fee)
		})
	}
}

func TestFeePolicy_UnknownType(t *testing.T) {
	policy := NewFeePolicy(map[domain.VehicleType]float64{
		domain.VehicleTypeCar: 5,
	})

	_, err := policy.FeeFor(domain.VehicleTypeBus, time.Hour)
	require.ErrorIs(t, err, ErrUnknownVehicleType)

	_, ok := policy.Rate(domain.VehicleTypeBus)
	assert.False(t, ok)

	rate, ok := policy.Rate(domain.VehicleTypeCar)
	require.True(t, ok)
	assert.Equal(t, 5.0, rate)
}
