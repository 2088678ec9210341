package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// TruckHandler handles admin truck-fleet management.
type TruckHandler struct {
	service ports.TruckService
}

func NewTruckHandler(service ports.TruckService) *TruckHandler {
	return &TruckHandler{service: service}
}

type createTruckRequest struct {
	PlateNumber string `json:"plate_number" validate:"required,min=2,max=16"`
	DriverName  string `json:"driver_name"  validate:"required"`
	Capacity    int    `json:"capacity"     validate:"gte=0"`
}

type updateTruckRequest struct {
	DriverName *string `json:"driver_name"`
	Capacity   *int    `json:"capacity" validate:"omitempty,gte=0"`
	Status     *string `json:"status"   validate:"omitempty,oneof=available dispatched maintenance"`
}

// List handles GET /v1/trucks.
func (h *TruckHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	trucks, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(trucks))
}

// Get handles GET /v1/trucks/:id.
func (h *TruckHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	truck, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(truck))
}

// Create handles POST /v1/trucks.
func (h *TruckHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTruckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	truck, err := h.service.Create(c.Request().Context(), actor, ports.CreateTruckInput{
		PlateNumber: req.PlateNumber,
		DriverName:  req.DriverName,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OK(truck))
}

// Update handles PUT /v1/trucks/:id.
func (h *TruckHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTruckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateTruckInput{
		DriverName: req.DriverName,
		Capacity:   req.Capacity,
	}
	if req.Status != nil {
		status := domain.TruckStatus(*req.Status)
		in.Status = &status
	}

	truck, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(truck))
}

// Delete handles DELETE /v1/trucks/:id.
func (h *TruckHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OKMessage("truck deleted"))
}
