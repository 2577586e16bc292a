package domain

import "time"

// ParkingSpot is one physical spot. Spots are created once at startup from the
// configured layout; the type never changes after creation.
type ParkingSpot struct {
	ID          int         `json:"id"`
	FloorNumber int         `json:"floor_number"`
	SpotNumber  int         `json:"spot_number"`
	SpotType    VehicleType `json:"spot_type"`
	IsAvailable bool        `json:"is_available"`
	CreatedAt   time.Time   `json:"created_at"`
}

// AvailabilityReport is keyed over the full vehicle-type set; types with no
// free spot appear with count 0.
type AvailabilityReport struct {
	TotalAvailable int                 `json:"total_available"`
	ByType         map[VehicleType]int `json:"by_type"`
}
