package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// RegisterVehicleRequest is the HTTP request body for vehicle onboarding.
type RegisterVehicleRequest struct {
	Plate      string   `json:"plate"`
	Type       string   `json:"type"`
	Capacity   int      `json:"capacity"`
	Fuel       string   `json:"fuel"`
	Features   []string `json:"features"`
	HourlyRate float64  `json:"hourly_rate"`
	DailyRate  float64  `json:"daily_rate"`
}

// SetVehicleStatusRequest is the HTTP request body for a status change.
type SetVehicleStatusRequest struct {
	Status string `json:"status"`
}

// VehicleResponse is the HTTP response for vehicle data.
type VehicleResponse struct {
	ID         string   `json:"id"`
	Plate      string   `json:"plate"`
	Type       string   `json:"type"`
	Capacity   int      `json:"capacity"`
	Fuel       string   `json:"fuel"`
	Features   []string `json:"features"`
	HourlyRate float64  `json:"hourly_rate"`
	DailyRate  float64  `json:"daily_rate"`
	Status     string   `json:"status"`
}

func toVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:         v.ID,
		Plate:      v.Plate,
		Type:       string(v.Type),
		Capacity:   v.Capacity,
		Fuel:       string(v.Fuel),
		Features:   v.Features,
		HourlyRate: v.HourlyRate,
		DailyRate:  v.DailyRate,
		Status:     string(v.Status),
	}
}

// Register handles POST /v1/vehicles
func (h *VehicleHandler) Register(c *gin.Context) {
	var req RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.Register(c.Request.Context(), service.RegisterVehicleRequest{
		Plate:      req.Plate,
		Type:       domain.VehicleType(req.Type),
		Capacity:   req.Capacity,
		Fuel:       domain.FuelType(req.Fuel),
		Features:   req.Features,
		HourlyRate: req.HourlyRate,
		DailyRate:  req.DailyRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toVehicleResponse(vehicle))
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	if plate := c.Query("plate"); plate != "" {
		vehicle, err := h.vehicleService.GetByPlate(c.Request.Context(), plate)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, []VehicleResponse{toVehicleResponse(vehicle)})
		return
	}

	filter := repository.VehicleFilter{
		Status: domain.VehicleStatus(c.Query("status")),
		Type:   domain.VehicleType(c.Query("type")),
	}
	if v, ok := queryInt(c, "min_capacity"); ok {
		filter.MinCapacity = v
	}

	vehicles, err := h.vehicleService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, toVehicleResponse(v))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// SetStatus handles POST /v1/vehicles/:id/status
func (h *VehicleHandler) SetStatus(c *gin.Context) {
	var req SetVehicleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.vehicleService.SetStatus(c.Request.Context(), c.Param("id"), domain.VehicleStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
