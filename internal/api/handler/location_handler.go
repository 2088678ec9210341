package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// defaultNearbyRadiusKm applies when the radius query parameter is absent.
const defaultNearbyRadiusKm = 10

// LocationHandler handles saved-location and map endpoints.
type LocationHandler struct {
	service ports.LocationService
}

func NewLocationHandler(service ports.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// Name and type are optional; a missing type defaults to "shared" in the
// service layer.
type saveLocationRequest struct {
	Latitude  float64 `json:"latitude"  validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Name      string  `json:"name"`
	Type      string  `json:"type"      validate:"omitempty,oneof=home work garage other shared"`
	Address   string  `json:"address"`
	IsPrimary bool    `json:"is_primary"`
}

// List handles GET /v1/locations.
func (h *LocationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	locations, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(locations))
}

// Create handles POST /v1/locations.
func (h *LocationHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req saveLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	location, err := h.service.Create(c.Request().Context(), actor, ports.SaveLocationInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Name:      req.Name,
		Type:      req.Type,
		Address:   req.Address,
		IsPrimary: req.IsPrimary,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OK(location))
}

// Update handles PUT /v1/locations/:id.
func (h *LocationHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req saveLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	location, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.SaveLocationInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Name:      req.Name,
		Type:      req.Type,
		Address:   req.Address,
		IsPrimary: req.IsPrimary,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(location))
}

// Delete handles DELETE /v1/locations/:id.
func (h *LocationHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OKMessage("location deleted"))
}

// Nearby handles GET /v1/locations/nearby?latitude=&longitude=&radius=.
func (h *LocationHandler) Nearby(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	lat, err := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid latitude")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid longitude")
	}
	radius := float64(defaultNearbyRadiusKm)
	if raw := c.QueryParam("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid radius")
		}
	}

	locations, err := h.service.Nearby(c.Request().Context(), actor, ports.NearbyInput{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radius,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(locations))
}

// MapsFormat handles GET /v1/locations/maps-format — markers shaped for map
// rendering on the client.
func (h *LocationHandler) MapsFormat(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	markers, err := h.service.MapsFormat(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(markers))
}
