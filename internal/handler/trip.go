package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/service"
)

// TripHandler handles HTTP requests for trips and assignments.
type TripHandler struct {
	tripService       *service.TripService
	assignmentService *service.AssignmentService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService, assignmentService *service.AssignmentService) *TripHandler {
	return &TripHandler{
		tripService:       tripService,
		assignmentService: assignmentService,
	}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	ClientName      string  `json:"client_name"`
	EventName       string  `json:"event_name"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	PickupAt        string  `json:"pickup_at"`
	DurationMinutes int     `json:"duration_minutes"`
	Passengers      int     `json:"passengers"`
	Price           float64 `json:"price"`
	VehicleType     string  `json:"vehicle_type"`
}

// AdvanceTripRequest is the HTTP request body for a lifecycle transition.
type AdvanceTripRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// AssignTripResponse is the HTTP response for a successful assignment.
type AssignTripResponse struct {
	TripID    string `json:"trip_id"`
	VehicleID string `json:"vehicle_id"`
	DriverID  string `json:"driver_id"`
}

// TripResponse is the HTTP response for trip data.
type TripResponse struct {
	ID              string  `json:"id"`
	ClientName      string  `json:"client_name"`
	EventName       string  `json:"event_name,omitempty"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	PickupAt        string  `json:"pickup_at"`
	EstimatedEndAt  string  `json:"estimated_end_at"`
	Passengers      int     `json:"passengers"`
	Price           float64 `json:"price"`
	VehicleType     string  `json:"vehicle_type,omitempty"`
	Status          string  `json:"status"`
	VehicleID       string  `json:"vehicle_id,omitempty"`
	DriverID        string  `json:"driver_id,omitempty"`
	CancelReason    string  `json:"cancel_reason,omitempty"`
}

func toTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:              t.ID,
		ClientName:      t.ClientName,
		EventName:       t.EventName,
		PickupLocation:  t.PickupLocation,
		DropoffLocation: t.DropoffLocation,
		PickupAt:        t.PickupAt.Format(time.RFC3339),
		EstimatedEndAt:  t.EstimatedEndAt.Format(time.RFC3339),
		Passengers:      t.Passengers,
		Price:           t.Price,
		VehicleType:     string(t.VehicleType),
		Status:          string(t.Status),
		VehicleID:       t.VehicleID,
		DriverID:        t.DriverID,
		CancelReason:    t.CancelReason,
	}
}

// Create handles POST /v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	pickupAt, err := time.Parse(time.RFC3339, req.PickupAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "pickup_at must be RFC3339"})
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), service.CreateTripRequest{
		ClientName:      req.ClientName,
		EventName:       req.EventName,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupAt:        pickupAt,
		Duration:        time.Duration(req.DurationMinutes) * time.Minute,
		Passengers:      req.Passengers,
		Price:           req.Price,
		VehicleType:     domain.VehicleType(req.VehicleType),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTripResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	filter := repository.TripFilter{
		Status: domain.TripStatus(c.Query("status")),
	}

	trips, err := h.tripService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		response = append(response, toTripResponse(t))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.tripService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTripResponse(trip))
}

// Assign handles POST /v1/trips/:id/assign
func (h *TripHandler) Assign(c *gin.Context) {
	result, err := h.assignmentService.Assign(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AssignTripResponse{
		TripID:    result.Trip.ID,
		VehicleID: result.VehicleID,
		DriverID:  result.DriverID,
	})
}

// Advance handles POST /v1/trips/:id/advance
func (h *TripHandler) Advance(c *gin.Context) {
	var req AdvanceTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.Advance(c.Request.Context(), c.Param("id"), domain.TripStatus(req.Status), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTripResponse(trip))
}

// Release handles POST /v1/trips/:id/release
func (h *TripHandler) Release(c *gin.Context) {
	if err := h.assignmentService.Release(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
