package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/travelease/travelease/internal/metrics"
	"github.com/travelease/travelease/internal/model"
	"github.com/travelease/travelease/internal/repository"
)

// RecentVehicleCap is the fixed result cap for the recent-vehicles view.
const RecentVehicleCap = 6

// vehicleSortKeys maps API sort parameters to storage columns. Anything
// outside the map falls back to creation time.
var vehicleSortKeys = map[string]string{
	"createdAt": "created_at",
	"price":     "price_per_day",
	"name":      "name",
}

// VehicleService handles vehicle listings and the ownership policy
// around their mutation.
type VehicleService struct {
	store   VehicleStore
	cache   VehicleCache
	metrics metrics.Recorder
}

// NewVehicleService creates a VehicleService. The cache may be nil.
func NewVehicleService(store VehicleStore, cache VehicleCache, recorder metrics.Recorder) *VehicleService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &VehicleService{store: store, cache: cache, metrics: recorder}
}

// CreateVehicleInput defines input for creating a vehicle. It carries no
// owner field: ownership always comes from the verified subject.
type CreateVehicleInput struct {
	Name        string
	Model       string
	Category    string
	Location    string
	PricePerDay float64
	SeatCount   int
	Description string
	ImageURL    string
	Features    []string
	Available   bool
}

// CreateVehicle persists a listing owned by the subject. Whatever owner
// the client claimed in the payload was already discarded at the DTO
// boundary; the subject is authoritative.
func (s *VehicleService) CreateVehicle(ctx context.Context, subject string, input CreateVehicleInput) (*model.Vehicle, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.PricePerDay < 0 {
		return nil, fmt.Errorf("%w: pricePerDay must not be negative", ErrValidation)
	}

	now := time.Now().UTC()
	vehicle := &model.Vehicle{
		ID:          uuid.NewString(),
		OwnerEmail:  subject,
		Name:        input.Name,
		Model:       input.Model,
		Category:    input.Category,
		Location:    input.Location,
		PricePerDay: input.PricePerDay,
		SeatCount:   input.SeatCount,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Features:    input.Features,
		Available:   input.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.InsertVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.invalidateRecent(ctx)
	s.metrics.IncVehicleCreated()
	return vehicle, nil
}

// ListVehiclesInput defines the public listing filter.
type ListVehiclesInput struct {
	Search   string
	Category string
	Sort     string
	Order    string
}

// ListVehicles returns the public listing. Unrecognized or absent
// filter parameters mean "no filter"; the default order is newest
// first.
func (s *VehicleService) ListVehicles(ctx context.Context, input ListVehiclesInput) ([]*model.Vehicle, error) {
	filter := repository.VehicleFilter{
		Search:     strings.TrimSpace(input.Search),
		Category:   strings.TrimSpace(input.Category),
		SortColumn: vehicleSortKeys[input.Sort],
		Descending: input.Order != "asc",
	}

	vehicles, err := s.store.ListVehicles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

// RecentVehicles returns the newest listings, capped at
// RecentVehicleCap, newest first. Served from cache when possible.
func (s *VehicleService) RecentVehicles(ctx context.Context) ([]*model.Vehicle, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRecentVehicles(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicles, err := s.store.ListVehicles(ctx, repository.VehicleFilter{
		SortColumn: "created_at",
		Descending: true,
		Limit:      RecentVehicleCap,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent vehicles: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetRecentVehicles(ctx, vehicles)
	}
	return vehicles, nil
}

// GetVehicle returns a single listing by id. Fails fast with
// ErrInvalidID on a structurally invalid identifier.
func (s *VehicleService) GetVehicle(ctx context.Context, id string) (*model.Vehicle, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	vehicle, err := s.store.GetVehicleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return vehicle, nil
}

// ListMyVehicles returns the subject's own listings. The optional
// requestedEmail parameter must be empty or equal to the subject.
func (s *VehicleService) ListMyVehicles(ctx context.Context, subject, requestedEmail string) ([]*model.Vehicle, error) {
	if err := guardOwnerEmail(subject, requestedEmail); err != nil {
		return nil, err
	}

	vehicles, err := s.store.ListVehiclesByOwner(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned vehicles: %w", err)
	}
	return vehicles, nil
}

// UpdateVehicleInput defines a partial listing patch. Nil fields are
// left untouched; identity and ownership fields are not patchable.
type UpdateVehicleInput struct {
	Name        *string
	Model       *string
	Category    *string
	Location    *string
	PricePerDay *float64
	SeatCount   *int
	Description *string
	ImageURL    *string
	Features    *[]string
	Available   *bool
}

// UpdateMyVehicle applies a patch under the compound (id, owner) filter.
// A zero MatchedCount covers both a missing id and another owner's
// vehicle; callers cannot tell which.
func (s *VehicleService) UpdateMyVehicle(ctx context.Context, subject, id string, input UpdateVehicleInput) (*model.UpdateResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Model != nil {
		patch["model"] = *input.Model
	}
	if input.Category != nil {
		patch["category"] = *input.Category
	}
	if input.Location != nil {
		patch["location"] = *input.Location
	}
	if input.PricePerDay != nil {
		patch["price_per_day"] = *input.PricePerDay
	}
	if input.SeatCount != nil {
		patch["seat_count"] = *input.SeatCount
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.ImageURL != nil {
		patch["image_url"] = *input.ImageURL
	}
	if input.Features != nil {
		patch["features"] = *input.Features
	}
	if input.Available != nil {
		patch["available"] = *input.Available
	}

	if len(patch) == 0 {
		return &model.UpdateResult{}, nil
	}

	matched, err := s.store.UpdateOwnedVehicle(ctx, id, subject, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	if matched > 0 {
		s.invalidateRecent(ctx)
	}
	return &model.UpdateResult{MatchedCount: matched, ModifiedCount: matched}, nil
}

// DeleteMyVehicle removes a listing under the compound (id, owner)
// filter. Idempotent: a zero DeletedCount is a success.
func (s *VehicleService) DeleteMyVehicle(ctx context.Context, subject, id string) (*model.DeleteResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	deleted, err := s.store.DeleteOwnedVehicle(ctx, id, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to delete vehicle: %w", err)
	}

	if deleted > 0 {
		s.invalidateRecent(ctx)
	}
	return &model.DeleteResult{DeletedCount: deleted}, nil
}

func (s *VehicleService) invalidateRecent(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateRecentVehicles(ctx)
	}
}
