package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/travelease/travelease/internal/model"
)

func TestVehicleService_CreateVehicle_OwnerFromSubject(t *testing.T) {
	ctx := context.Background()
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, nil)

	vehicle, err := svc.CreateVehicle(ctx, "a@x.com", CreateVehicleInput{
		Name:        "Family Van",
		PricePerDay: 50,
		Available:   true,
	})
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	if vehicle.OwnerEmail != "a@x.com" {
		t.Fatalf("owner must be the subject, got %q", vehicle.OwnerEmail)
	}
	if _, err := uuid.Parse(vehicle.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", vehicle.ID)
	}
	if vehicle.CreatedAt.IsZero() {
		t.Fatalf("expected server-side creation timestamp")
	}
}

func TestVehicleService_CreateVehicle_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewVehicleService(newFakeVehicleStore(), nil, nil)

	if _, err := svc.CreateVehicle(ctx, "a@x.com", CreateVehicleInput{}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name: expected ErrValidation, got %v", err)
	}
	if _, err := svc.CreateVehicle(ctx, "a@x.com", CreateVehicleInput{Name: "V", PricePerDay: -1}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative price: expected ErrValidation, got %v", err)
	}
}

func TestVehicleService_ListMyVehicles_Guard(t *testing.T) {
	ctx := context.Background()
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, nil)

	if _, err := svc.CreateVehicle(ctx, "a@x.com", CreateVehicleInput{Name: "Van"}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	// Convenience parameter equal to the subject is accepted.
	mine, err := svc.ListMyVehicles(ctx, "a@x.com", "a@x.com")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 || mine[0].OwnerEmail != "a@x.com" {
		t.Fatalf("unexpected listing %+v", mine)
	}

	// Absent parameter falls back to the subject.
	mine, err = svc.ListMyVehicles(ctx, "a@x.com", "")
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected 1 vehicle, got %d (err %v)", len(mine), err)
	}

	// Mismatched parameter is rejected, never honored.
	if _, err := svc.ListMyVehicles(ctx, "b@x.com", "a@x.com"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Another subject sees an empty list, not a@x.com's vehicles.
	other, err := svc.ListMyVehicles(ctx, "b@x.com", "")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty list for non-owner, got %d", len(other))
	}
}

func TestVehicleService_UpdateMyVehicle_CrossOwnerZeroEffect(t *testing.T) {
	ctx := context.Background()
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, nil)

	vehicle, err := svc.CreateVehicle(ctx, "a@x.com", CreateVehicleInput{Name: "Van", PricePerDay: 50})
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	price := 10.0
	result, err := svc.UpdateMyVehicle(ctx, "b@x.com", vehicle.ID, UpdateVehicleInput{PricePerDay: &price})
	if err != nil {
		t.Fatalf("cross-owner update must not error: %v", err)
	}
	if result.MatchedCount != 0 {
		t.Fatalf("cross-owner update must be zero-effect, got %+v", result)
	}

	unchanged, err := svc.GetVehicle(ctx, vehicle.ID)
	if err != nil {
		t.Fatalf("get vehicle: %v", err)
	}
	if unchanged.PricePerDay != 50 {
		t.Fatalf("record was mutated by a non-owner: %+v", unchanged)
	}

	// The real owner's patch lands.
	result, err = svc.UpdateMyVehicle(ctx, "a@x.com", vehicle.ID, UpdateVehicleInput{PricePerDay: &price})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if result.MatchedCount != 1 || result.ModifiedCount != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestVehicleService_DeleteMyVehicle_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, nil)

	vehicle, err := svc.CreateVehicle(ctx, "a@x.com", CreateVehicleInput{Name: "Van"})
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	// Non-owner delete is zero-effect.
	result, err := svc.DeleteMyVehicle(ctx, "b@x.com", vehicle.ID)
	if err != nil || result.DeletedCount != 0 {
		t.Fatalf("expected zero-effect delete, got %+v (err %v)", result, err)
	}

	result, err = svc.DeleteMyVehicle(ctx, "a@x.com", vehicle.ID)
	if err != nil || result.DeletedCount != 1 {
		t.Fatalf("expected delete, got %+v (err %v)", result, err)
	}

	// Deleting again is still a success.
	result, err = svc.DeleteMyVehicle(ctx, "a@x.com", vehicle.ID)
	if err != nil || result.DeletedCount != 0 {
		t.Fatalf("expected idempotent delete, got %+v (err %v)", result, err)
	}
}

func TestVehicleService_InvalidID(t *testing.T) {
	ctx := context.Background()
	svc := NewVehicleService(newFakeVehicleStore(), nil, nil)

	if _, err := svc.GetVehicle(ctx, "not-a-uuid"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("get: expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.UpdateMyVehicle(ctx, "a@x.com", "123", UpdateVehicleInput{}); !errors.Is(err, ErrInvalidID) {
		t.Errorf("update: expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.DeleteMyVehicle(ctx, "a@x.com", "123"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("delete: expected ErrInvalidID, got %v", err)
	}
}

func TestVehicleService_GetVehicle_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewVehicleService(newFakeVehicleStore(), nil, nil)

	if _, err := svc.GetVehicle(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVehicleService_RecentVehicles_CapAndOrder(t *testing.T) {
	ctx := context.Background()
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, nil)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < RecentVehicleCap+3; i++ {
		vehicle, err := svc.CreateVehicle(ctx, "a@x.com", CreateVehicleInput{Name: fmt.Sprintf("v%02d", i)})
		if err != nil {
			t.Fatalf("create vehicle: %v", err)
		}
		// Spread creation times so the ordering is unambiguous.
		store.mu.Lock()
		store.vehicles[vehicle.ID].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		store.mu.Unlock()
	}

	recent, err := svc.RecentVehicles(ctx)
	if err != nil {
		t.Fatalf("recent vehicles: %v", err)
	}
	if len(recent) != RecentVehicleCap {
		t.Fatalf("expected %d vehicles, got %d", RecentVehicleCap, len(recent))
	}
	for i := 0; i < len(recent)-1; i++ {
		if recent[i].CreatedAt.Before(recent[i+1].CreatedAt) {
			t.Fatalf("expected newest-first order at index %d", i)
		}
	}
	if recent[0].Name != fmt.Sprintf("v%02d", RecentVehicleCap+2) {
		t.Fatalf("expected the newest vehicle first, got %q", recent[0].Name)
	}
}

func TestVehicleService_RecentVehicles_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	store := newFakeVehicleStore()
	cache := &fakeVehicleCache{}
	svc := NewVehicleService(store, cache, nil)

	if _, err := svc.CreateVehicle(ctx, "a@x.com", CreateVehicleInput{Name: "Van"}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("create must invalidate the recent cache, got %d", cache.invalidated)
	}

	if _, err := svc.RecentVehicles(ctx); err != nil {
		t.Fatalf("recent vehicles: %v", err)
	}
	if cache.recent == nil {
		t.Fatalf("expected recent list to be cached")
	}

	// Served from cache on the next call even if the store changes.
	store.mu.Lock()
	store.vehicles = map[string]*model.Vehicle{}
	store.mu.Unlock()

	recent, err := svc.RecentVehicles(ctx)
	if err != nil {
		t.Fatalf("recent vehicles: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected cached result, got %d entries", len(recent))
	}
}

func TestVehicleService_ListVehicles_Filters(t *testing.T) {
	ctx := context.Background()
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, nil, nil)

	seed := []CreateVehicleInput{
		{Name: "City Car", Category: "car", Location: "Dhaka", PricePerDay: 30},
		{Name: "Mountain SUV", Category: "suv", Location: "Sylhet", PricePerDay: 80},
		{Name: "Beach Buggy", Category: "car", Location: "Cox's Bazar", PricePerDay: 55},
	}
	for _, input := range seed {
		if _, err := svc.CreateVehicle(ctx, "a@x.com", input); err != nil {
			t.Fatalf("create vehicle: %v", err)
		}
	}

	// Case-insensitive substring over name and location.
	got, err := svc.ListVehicles(ctx, ListVehiclesInput{Search: "sylhet"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Mountain SUV" {
		t.Fatalf("unexpected search result %+v", got)
	}

	got, err = svc.ListVehicles(ctx, ListVehiclesInput{Category: "car"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cars, got %d", len(got))
	}

	// Price ascending.
	got, err = svc.ListVehicles(ctx, ListVehiclesInput{Sort: "price", Order: "asc"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].PricePerDay != 30 || got[2].PricePerDay != 80 {
		t.Fatalf("unexpected price order %+v", got)
	}

	// Unrecognized parameters mean no filter.
	got, err = svc.ListVehicles(ctx, ListVehiclesInput{Sort: "bogus", Order: "sideways"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected all vehicles, got %d", len(got))
	}
}
