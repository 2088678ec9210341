package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// BranchHandler handles branch listing and admin branch management.
type BranchHandler struct {
	service ports.BranchService
}

func NewBranchHandler(service ports.BranchService) *BranchHandler {
	return &BranchHandler{service: service}
}

type branchRequest struct {
	Name    string  `json:"name"    validate:"required,min=2"`
	Address string  `json:"address" validate:"required"`
	Phone   string  `json:"phone"`
	Lat     float64 `json:"lat"     validate:"gte=-90,lte=90"`
	Lng     float64 `json:"lng"     validate:"gte=-180,lte=180"`
}

// List handles GET /v1/branches. Open to any authenticated caller.
func (h *BranchHandler) List(c echo.Context) error {
	branches, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(branches))
}

// Create handles POST /v1/branches.
func (h *BranchHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req branchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	branch, err := h.service.Create(c.Request().Context(), actor, ports.BranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Lat:     req.Lat,
		Lng:     req.Lng,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OK(branch))
}

// Update handles PUT /v1/branches/:id.
func (h *BranchHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req branchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	branch, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.BranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Lat:     req.Lat,
		Lng:     req.Lng,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(branch))
}

// Delete handles DELETE /v1/branches/:id.
func (h *BranchHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OKMessage("branch deleted"))
}
