package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"parking_lot/internal/config"
	"parking_lot/internal/domain"
)

// SeedSpots populates the spot inventory from the configured layout on first
// start. Spot numbers start at 1 on every floor and increment across the fixed
// vehicle-type order. Idempotent: a non-empty inventory is left untouched.
func SeedSpots(ctx context.Context, store Store, layout config.LotLayout) error {
	count, err := store.Spots().CountAll(ctx)
	if err != nil {
		return fmt.Errorf("counting parking spots: %w", err)
	}
	if count > 0 {
		log.Info().Int("spots", count).Msg("parking spots already populated")
		return nil
	}

	created := 0
	err = store.WithinTx(ctx, func(tx Store) error {
		for floor := 1; floor <= layout.Floors; floor++ {
			spotNumber := 1
			for _, spotType := range domain.AllVehicleTypes {
				for i := 0; i < layout.SpotsPerFloor[spotType]; i++ {
					spot := &domain.ParkingSpot{
						FloorNumber: floor,
						SpotNumber:  spotNumber,
						SpotType:    spotType,
						IsAvailable: true,
					}
					if _, err := tx.Spots().Create(ctx, spot); err != nil {
						return fmt.Errorf("creating spot %d on floor %d: %w", spotNumber, floor, err)
					}
					spotNumber++
					created++
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Int("spots", created).Int("floors", layout.Floors).Msg("parking spots populated")
	return nil
}
