package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking_lot/internal/config"
	"parking_lot/internal/domain"
	"parking_lot/internal/repository"
	"parking_lot/internal/repository/memory"
	"parking_lot/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	layout := config.LotLayout{
		Floors: 1,
		SpotsPerFloor: map[domain.VehicleType]int{
			domain.VehicleTypeMotorcycle: 1,
			domain.VehicleTypeCar:        2,
		},
	}
	require.NoError(t, repository.SeedSpots(context.Background(), store, layout))

	feePolicy := service.NewFeePolicy(map[domain.VehicleType]float64{
		domain.VehicleTypeMotorcycle: 2,
		domain.VehicleTypeCar:        5,
		domain.VehicleTypeBus:        10,
	})
	return SetupRouter(service.NewParkingService(store, feePolicy))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEntryEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/parking/entry", gin.H{
		"license_plate": "51A-123",
		"vehicle_type":  "Car",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var result domain.EntryResultDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotZero(t, result.SessionID)
	assert.NotEmpty(t, result.TicketCode)
	assert.Equal(t, 1, result.FloorNumber)
}

func TestEntryEndpoint_Validation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/parking/entry", gin.H{
		"license_plate": "51A-123",
		"vehicle_type":  "Bicycle",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/parking/entry", gin.H{
		"vehicle_type": "Car",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntryEndpoint_NoSpotAvailable(t *testing.T) {
	router := newTestRouter(t)

	// No bus spots are configured in the test layout.
	w := doJSON(t, router, http.MethodPost, "/api/v1/parking/entry", gin.H{
		"license_plate": "BUS-99",
		"vehicle_type":  "Bus",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExitEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/parking/entry", gin.H{
		"license_plate": "51A-124",
		"vehicle_type":  "Car",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var entry domain.EntryResultDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))

	w = doJSON(t, router, http.MethodPost, "/api/v1/parking/exit", gin.H{
		"session_id": entry.SessionID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var exit domain.ExitResultDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exit))
	assert.Equal(t, entry.SessionID, exit.SessionID)

	// Settling the same session again is a 404.
	w = doJSON(t, router, http.MethodPost, "/api/v1/parking/exit", gin.H{
		"session_id": entry.SessionID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExitEndpoint_UnknownSession(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/parking/exit", gin.H{
		"session_id": 9999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/parking/availability", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.AvailabilityReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 3, report.TotalAvailable)
	assert.Equal(t, 2, report.ByType[domain.VehicleTypeCar])
	// Types with no configured spots still show up with count 0.
	assert.Contains(t, report.ByType, domain.VehicleTypeBus)
	assert.Equal(t, 0, report.ByType[domain.VehicleTypeBus])
}

func TestSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/parking/sessions/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/parking/entry", gin.H{
		"license_plate": "51A-125",
		"vehicle_type":  "Car",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var entry domain.EntryResultDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))

	w = doJSON(t, router, http.MethodGet, "/api/v1/parking/sessions/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var session domain.ParkingSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, domain.SessionActive, session.Status)
	assert.Equal(t, domain.VehicleTypeCar, session.VehicleType)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
