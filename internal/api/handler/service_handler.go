package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/autocarepro/autocare-api/internal/api/metrics"
	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// ServiceHandler handles HTTP requests for service-request operations.
type ServiceHandler struct {
	service ports.ServiceRequestService
}

func NewServiceHandler(service ports.ServiceRequestService) *ServiceHandler {
	return &ServiceHandler{service: service}
}

type createServiceRequest struct {
	VehicleID     string    `json:"vehicle_id"     validate:"required"`
	ServiceType   string    `json:"service_type"   validate:"required,oneof=oil_change tire_rotation brake_service engine_repair inspection towing other"`
	Title         string    `json:"title"          validate:"required,min=3"`
	Description   string    `json:"description"`
	PreferredDate time.Time `json:"preferred_date" validate:"required"`
	Location      string    `json:"location"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved in_progress completed cancelled"`
}

type dispatchRequest struct {
	TruckID string `json:"truck_id" validate:"required"`
}

type listServicesData struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// List handles GET /v1/services with status filter and pagination.
func (h *ServiceHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), actor, ports.ListServicesInput{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, OK(listServicesData{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}))
}

// Get handles GET /v1/services/:id.
func (h *ServiceHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	req, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(req))
}

// Create handles POST /v1/services.
//
// @Summary      Open a service request
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createServiceRequest  true  "Service request details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /v1/services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), actor, ports.CreateServiceInput{
		VehicleID:     req.VehicleID,
		ServiceType:   req.ServiceType,
		Title:         req.Title,
		Description:   req.Description,
		PreferredDate: req.PreferredDate,
		Location:      req.Location,
	})
	if err != nil {
		return err
	}

	metrics.ServiceRequestsCreatedTotal.WithLabelValues(created.ServiceType).Inc()
	return c.JSON(http.StatusCreated, OK(created))
}

// UpdateStatus handles PUT /v1/services/:id/status — admin-only transition.
func (h *ServiceHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.ServiceStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(updated))
}

// Dispatch handles POST /v1/services/:id/dispatch — assigns a truck.
func (h *ServiceHandler) Dispatch(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req dispatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.service.Dispatch(c.Request().Context(), actor, c.Param("id"), req.TruckID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(updated))
}
