package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// RegisterDriverRequest is the HTTP request body for driver onboarding.
type RegisterDriverRequest struct {
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	LicenseClass    string   `json:"license_class"`
	ExperienceYears int      `json:"experience_years"`
	Languages       []string `json:"languages"`
	Certifications  []string `json:"certifications"`
}

// SetDriverStatusRequest is the HTTP request body for a status change.
type SetDriverStatusRequest struct {
	Status string `json:"status"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Phone             string   `json:"phone"`
	LicenseClass      string   `json:"license_class"`
	ExperienceYears   int      `json:"experience_years"`
	Languages         []string `json:"languages"`
	Certifications    []string `json:"certifications"`
	Status            string   `json:"status"`
	AssignedVehicleID string   `json:"assigned_vehicle_id,omitempty"`
}

func toDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:                d.ID,
		Name:              d.Name,
		Phone:             d.Phone,
		LicenseClass:      d.LicenseClass,
		ExperienceYears:   d.ExperienceYears,
		Languages:         d.Languages,
		Certifications:    d.Certifications,
		Status:            string(d.Status),
		AssignedVehicleID: d.AssignedVehicleID,
	}
}

// Register handles POST /v1/drivers
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, err := h.driverService.Register(c.Request.Context(), service.RegisterDriverRequest{
		Name:            req.Name,
		Phone:           req.Phone,
		LicenseClass:    req.LicenseClass,
		ExperienceYears: req.ExperienceYears,
		Languages:       req.Languages,
		Certifications:  req.Certifications,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDriverResponse(driver))
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	if phone := c.Query("phone"); phone != "" {
		driver, err := h.driverService.GetByPhone(c.Request.Context(), phone)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, []DriverResponse{toDriverResponse(driver)})
		return
	}

	filter := repository.DriverFilter{
		Status:       domain.DriverStatus(c.Query("status")),
		LicenseClass: c.Query("license_class"),
	}

	drivers, err := h.driverService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriverResponse(d))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.driverService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDriverResponse(driver))
}

// SetStatus handles POST /v1/drivers/:id/status
func (h *DriverHandler) SetStatus(c *gin.Context) {
	var req SetDriverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.driverService.SetStatus(c.Request.Context(), c.Param("id"), domain.DriverStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
