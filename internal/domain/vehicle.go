package domain

import "time"

type VehicleType string

const (
	VehicleTypeMotorcycle VehicleType = "Motorcycle"
	VehicleTypeCar        VehicleType = "Car"
	VehicleTypeBus        VehicleType = "Bus"
)

// AllVehicleTypes fixes the iteration order used for spot seeding and
// availability reports.
var AllVehicleTypes = []VehicleType{VehicleTypeMotorcycle, VehicleTypeCar, VehicleTypeBus}

func (t VehicleType) Valid() bool {
	for _, known := range AllVehicleTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Vehicle is registered on first entry and never changes afterwards. A plate
// keeps the type it was first registered with.
type Vehicle struct {
	ID           int         `json:"id"`
	LicensePlate string      `json:"license_plate"`
	VehicleType  VehicleType `json:"vehicle_type"`
	CreatedAt    time.Time   `json:"created_at"`
}
