package service

import (
	"context"

	"github.com/travelease/travelease/internal/model"
	"github.com/travelease/travelease/internal/repository"
)

// UserStore is the persistence contract for user records.
// *repository.Repository satisfies it; tests use in-memory fakes.
type UserStore interface {
	InsertUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUserByEmail(ctx context.Context, email string, patch map[string]any) (int64, error)
}

// VehicleStore is the persistence contract for vehicle records.
type VehicleStore interface {
	InsertVehicle(ctx context.Context, v *model.Vehicle) error
	GetVehicleByID(ctx context.Context, id string) (*model.Vehicle, error)
	ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]*model.Vehicle, error)
	ListVehiclesByOwner(ctx context.Context, ownerEmail string) ([]*model.Vehicle, error)
	UpdateOwnedVehicle(ctx context.Context, id, ownerEmail string, patch map[string]any) (int64, error)
	DeleteOwnedVehicle(ctx context.Context, id, ownerEmail string) (int64, error)
}

// BookingStore is the persistence contract for booking records.
type BookingStore interface {
	InsertBooking(ctx context.Context, b *model.Booking) error
	ListBookingsByBuyer(ctx context.Context, buyerEmail string) ([]*model.Booking, error)
	DeleteOwnedBooking(ctx context.Context, id, buyerEmail string) (int64, error)
}

// VehicleCache caches the recent-vehicles listing. Optional; a nil
// cache disables caching.
type VehicleCache interface {
	GetRecentVehicles(ctx context.Context) ([]*model.Vehicle, error)
	SetRecentVehicles(ctx context.Context, vehicles []*model.Vehicle) error
	InvalidateRecentVehicles(ctx context.Context) error
}
