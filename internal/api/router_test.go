package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/autocarepro/autocare-api/internal/infrastructure/relay"
	"github.com/autocarepro/autocare-api/internal/pkg/config"
)

// The driver connects lazily, so building the full router needs no running
// Mongo or Redis.
func newTestRouter(t *testing.T) map[string]bool {
	t.Helper()

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	e, _ := NewRouter(RouterDeps{
		Config:      &config.Config{JWTSecret: "secret"},
		MongoClient: client,
		DB:          client.Database("autocare_test"),
		Redis:       redis.NewClient(&redis.Options{}),
		Hub:         relay.NewHub(zerolog.Nop()),
		Log:         zerolog.Nop(),
	})

	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestRouter_RegisteredPaths(t *testing.T) {
	routes := newTestRouter(t)

	want := []string{
		http.MethodPost + " /auth/register",
		http.MethodPost + " /auth/login",
		http.MethodGet + " /health",
		http.MethodGet + " /health/ready",
		http.MethodGet + " /metrics",
		http.MethodGet + " /ws",
		http.MethodGet + " /v1/auth/me",
		http.MethodPost + " /v1/vehicles/:id/maintenance",
		http.MethodPut + " /v1/services/:id/status",
		http.MethodPost + " /v1/services/:id/dispatch",
		http.MethodPost + " /v1/messages/broadcast",
		http.MethodGet + " /v1/payments/config",
		http.MethodGet + " /v1/payments",
		http.MethodGet + " /v1/payments/admin/all",
		http.MethodPost + " /v1/payments/:id/refund",
		http.MethodGet + " /v1/locations/nearby",
		http.MethodGet + " /v1/locations/maps-format",
	}
	for _, route := range want {
		if !routes[route] {
			t.Fatalf("route %s not registered", route)
		}
	}

	if routes[http.MethodGet+" /v1/payments/all"] {
		t.Fatalf("admin payment listing must live under /v1/payments/admin/all only")
	}
}
