package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/autocarepro/autocare-api/internal/api/handler"
	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

type stubLocationService struct {
	createFn func(ctx context.Context, actor domain.Actor, in ports.SaveLocationInput) (*domain.Location, error)
	nearbyFn func(ctx context.Context, actor domain.Actor, in ports.NearbyInput) ([]*domain.Location, error)
}

func (s *stubLocationService) Create(ctx context.Context, actor domain.Actor, in ports.SaveLocationInput) (*domain.Location, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubLocationService) List(ctx context.Context, actor domain.Actor) ([]*domain.Location, error) {
	return nil, nil
}

func (s *stubLocationService) Update(ctx context.Context, actor domain.Actor, id string, in ports.SaveLocationInput) (*domain.Location, error) {
	return nil, domain.ErrLocationNotFound
}

func (s *stubLocationService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return domain.ErrLocationNotFound
}

func (s *stubLocationService) Nearby(ctx context.Context, actor domain.Actor, in ports.NearbyInput) ([]*domain.Location, error) {
	return s.nearbyFn(ctx, actor, in)
}

func (s *stubLocationService) MapsFormat(ctx context.Context, actor domain.Actor) ([]ports.MapMarker, error) {
	return nil, nil
}

func asUser(c echo.Context) {
	c.Set("user_id", "user_1")
	c.Set("role", "user")
}

func TestLocationHandler_Create_CoordinatesOnly(t *testing.T) {
	var got ports.SaveLocationInput
	svc := &stubLocationService{
		createFn: func(ctx context.Context, actor domain.Actor, in ports.SaveLocationInput) (*domain.Location, error) {
			got = in
			return &domain.Location{ID: "loc_1", UserID: actor.UserID, Latitude: in.Latitude, Longitude: in.Longitude, Type: "shared"}, nil
		},
	}
	h := handler.NewLocationHandler(svc)
	e := newTestEcho()

	// Name and type are optional; coordinates alone must be accepted.
	rec := doJSON(e, h.Create, http.MethodPost, "/v1/locations",
		`{"latitude":6.5,"longitude":3.3}`, asUser)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Name != "" || got.Type != "" {
		t.Fatalf("empty optional fields must pass through unchanged: %+v", got)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["type"] != "shared" {
		t.Fatalf("unexpected location: %v", data)
	}
}

func TestLocationHandler_Create_InvalidType(t *testing.T) {
	svc := &stubLocationService{
		createFn: func(ctx context.Context, actor domain.Actor, in ports.SaveLocationInput) (*domain.Location, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	}
	h := handler.NewLocationHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Create, http.MethodPost, "/v1/locations",
		`{"latitude":6.5,"longitude":3.3,"type":"office"}`, asUser)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}
}

func TestLocationHandler_Create_OutOfRangeCoordinates(t *testing.T) {
	svc := &stubLocationService{
		createFn: func(ctx context.Context, actor domain.Actor, in ports.SaveLocationInput) (*domain.Location, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	}
	h := handler.NewLocationHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Create, http.MethodPost, "/v1/locations",
		`{"latitude":91,"longitude":3.3}`, asUser)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for latitude 91, got %d", rec.Code)
	}
}

func TestLocationHandler_Nearby_QueryParams(t *testing.T) {
	var got ports.NearbyInput
	svc := &stubLocationService{
		nearbyFn: func(ctx context.Context, actor domain.Actor, in ports.NearbyInput) ([]*domain.Location, error) {
			got = in
			return []*domain.Location{}, nil
		},
	}
	h := handler.NewLocationHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Nearby, http.MethodGet,
		"/v1/locations/nearby?latitude=6.5&longitude=3.3&radius=2", "", asUser)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Latitude != 6.5 || got.Longitude != 3.3 || got.RadiusKm != 2 {
		t.Fatalf("query parameters not parsed: %+v", got)
	}
}

func TestLocationHandler_Nearby_DefaultRadius(t *testing.T) {
	var got ports.NearbyInput
	svc := &stubLocationService{
		nearbyFn: func(ctx context.Context, actor domain.Actor, in ports.NearbyInput) ([]*domain.Location, error) {
			got = in
			return []*domain.Location{}, nil
		},
	}
	h := handler.NewLocationHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Nearby, http.MethodGet,
		"/v1/locations/nearby?latitude=6.5&longitude=3.3", "", asUser)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.RadiusKm != 10 {
		t.Fatalf("expected default radius 10, got %v", got.RadiusKm)
	}
}

func TestLocationHandler_Nearby_MissingLatitude(t *testing.T) {
	svc := &stubLocationService{
		nearbyFn: func(ctx context.Context, actor domain.Actor, in ports.NearbyInput) ([]*domain.Location, error) {
			t.Fatalf("service must not be called without coordinates")
			return nil, nil
		},
	}
	h := handler.NewLocationHandler(svc)
	e := newTestEcho()

	rec := doJSON(e, h.Nearby, http.MethodGet, "/v1/locations/nearby?longitude=3.3", "", asUser)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
