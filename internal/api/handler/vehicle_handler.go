package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// VehicleHandler handles HTTP requests for vehicle operations.
type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

type createVehicleRequest struct {
	Make         string `json:"make"          validate:"required"`
	Model        string `json:"model"         validate:"required"`
	Year         int    `json:"year"          validate:"required,gte=1950,lte=2100"`
	LicensePlate string `json:"license_plate" validate:"required,min=2,max=16"`
	Color        string `json:"color"`
	Mileage      int    `json:"mileage"       validate:"gte=0"`
}

type updateVehicleRequest struct {
	Color   *string `json:"color"`
	Mileage *int    `json:"mileage" validate:"omitempty,gte=0"`
}

type maintenanceRequest struct {
	Description string    `json:"description" validate:"required"`
	Mileage     int       `json:"mileage"     validate:"gte=0"`
	PerformedAt time.Time `json:"performed_at"`
}

// List handles GET /v1/vehicles — the caller's vehicles, or all for admins.
func (h *VehicleHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	vehicles, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(vehicles))
}

// Get handles GET /v1/vehicles/:id.
func (h *VehicleHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	vehicle, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(vehicle))
}

// Create handles POST /v1/vehicles.
//
// @Summary      Register a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVehicleRequest  true  "Vehicle details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /v1/vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vehicle, err := h.service.Create(c.Request().Context(), actor, ports.CreateVehicleInput{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Color:        req.Color,
		Mileage:      req.Mileage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OK(vehicle))
}

// Update handles PUT /v1/vehicles/:id.
func (h *VehicleHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vehicle, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateVehicleInput{
		Color:   req.Color,
		Mileage: req.Mileage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(vehicle))
}

// AddMaintenance handles POST /v1/vehicles/:id/maintenance — appends to the
// vehicle's append-only history.
func (h *VehicleHandler) AddMaintenance(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vehicle, err := h.service.AddMaintenance(c.Request().Context(), actor, c.Param("id"), ports.MaintenanceInput{
		Description: req.Description,
		Mileage:     req.Mileage,
		PerformedAt: req.PerformedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(vehicle))
}

// Delete handles DELETE /v1/vehicles/:id — soft delete.
func (h *VehicleHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OKMessage("vehicle deleted"))
}
