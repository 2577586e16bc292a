package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parking_lot/internal/domain"
	"parking_lot/internal/repository"
	"parking_lot/internal/service"
)

type ParkingHandler struct {
	parkingService *service.ParkingService
}

func NewParkingHandler(ps *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{parkingService: ps}
}

// POST /api/v1/parking/entry
func (h *ParkingHandler) VehicleEntry(c *gin.Context) {
	var dto domain.VehicleEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "license_plate and vehicle_type are required: " + err.Error()})
		return
	}
	if !domain.VehicleType(dto.VehicleType).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("vehicle_type must be one of %v", domain.AllVehicleTypes)})
		return
	}

	result, err := h.parkingService.VehicleEntry(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, repository.ErrNoSpotAvailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register vehicle entry", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// POST /api/v1/parking/exit
func (h *ParkingHandler) VehicleExit(c *gin.Context) {
	var dto domain.VehicleExitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required: " + err.Error()})
		return
	}

	result, err := h.parkingService.VehicleExit(c.Request.Context(), dto.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		// ErrUnknownVehicleType lands here too: misconfigured rates are a
		// server-side problem, not a caller mistake.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register vehicle exit", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/v1/parking/availability
func (h *ParkingHandler) GetAvailability(c *gin.Context) {
	report, err := h.parkingService.GetAvailability(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read availability", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/v1/parking/sessions/:id
func (h *ParkingHandler) GetSessionByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	session, err := h.parkingService.GetParkingSessionByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parking session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load parking session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}
