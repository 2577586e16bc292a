package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type ParkingSessionStatus string

const (
	SessionActive    ParkingSessionStatus = "active"
	SessionCompleted ParkingSessionStatus = "completed"
)

type ParkingSession struct {
	ID              int                  `json:"id"`
	TicketCode      string               `json:"ticket_code"`
	VehicleID       int                  `json:"vehicle_id"`
	SpotID          int                  `json:"spot_id"`
	EntryTime       time.Time            `json:"entry_time"`
	ExitTime        null.Time            `json:"exit_time"`
	DurationMinutes null.Int             `json:"duration_minutes"`
	Fee             null.Float           `json:"fee"`
	Status          ParkingSessionStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`

	// Joined from the vehicles table, not a session column.
	VehicleType VehicleType `json:"vehicle_type,omitempty"`
}

type VehicleEntryDTO struct {
	LicensePlate string `json:"license_plate" binding:"required"`
	VehicleType  string `json:"vehicle_type" binding:"required"`
}

type VehicleExitDTO struct {
	SessionID int `json:"session_id" binding:"required"`
}

type EntryResultDTO struct {
	SessionID   int    `json:"session_id"`
	TicketCode  string `json:"ticket_code"`
	SpotID      int    `json:"spot_id"`
	FloorNumber int    `json:"floor_number"`
	SpotNumber  int    `json:"spot_number"`
}

type ExitResultDTO struct {
	SessionID       int     `json:"session_id"`
	Fee             float64 `json:"fee"`
	DurationMinutes int64   `json:"duration_minutes"`
}
