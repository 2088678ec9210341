package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

func TestTruckService_AdminOnly(t *testing.T) {
	repo := newStubTruckRepo()
	svc := NewTruckService(repo, zerolog.Nop())
	user := domain.Actor{UserID: "user_1", Role: domain.RoleUser}

	if _, err := svc.Create(context.Background(), user, ports.CreateTruckInput{PlateNumber: "TRK001"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin create, got %v", err)
	}
	if _, err := svc.List(context.Background(), user); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin list, got %v", err)
	}
}

func TestTruckService_Lifecycle(t *testing.T) {
	repo := newStubTruckRepo()
	svc := NewTruckService(repo, zerolog.Nop())
	admin := domain.Actor{UserID: "admin_1", Role: domain.RoleAdmin}

	truck, err := svc.Create(context.Background(), admin, ports.CreateTruckInput{
		PlateNumber: "TRK001", DriverName: "Sam", Capacity: 2,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if truck.Status != domain.TruckAvailable {
		t.Fatalf("new truck must start available, got %s", truck.Status)
	}

	maintenance := domain.TruckMaintenance
	updated, err := svc.Update(context.Background(), admin, truck.ID, ports.UpdateTruckInput{Status: &maintenance})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != domain.TruckMaintenance {
		t.Fatalf("status not updated: %s", updated.Status)
	}
	if updated.DriverName != "Sam" {
		t.Fatalf("nil fields must be left unchanged: %+v", updated)
	}

	if err := svc.Delete(context.Background(), admin, truck.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, truck.ID); !errors.Is(err, domain.ErrTruckNotFound) {
		t.Fatalf("expected ErrTruckNotFound after delete, got %v", err)
	}
}
