package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/travelease/travelease/internal/model"
	"github.com/travelease/travelease/internal/repository"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) InsertUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	clone := *user
	f.users[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []*model.User
	for _, u := range f.users {
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

func (f *fakeUserStore) UpdateUserByEmail(_ context.Context, email string, patch map[string]any) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return 0, nil
	}
	for column, value := range patch {
		switch column {
		case "name":
			user.Name = value.(string)
		case "photo_url":
			user.PhotoURL = value.(string)
		case "phone":
			user.Phone = value.(string)
		case "address":
			user.Address = value.(string)
		}
	}
	return 1, nil
}

// fakeVehicleStore is an in-memory VehicleStore keyed by id.
type fakeVehicleStore struct {
	mu       sync.Mutex
	vehicles map[string]*model.Vehicle
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{vehicles: map[string]*model.Vehicle{}}
}

func (f *fakeVehicleStore) InsertVehicle(_ context.Context, v *model.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *v
	f.vehicles[v.ID] = &clone
	return nil
}

func (f *fakeVehicleStore) GetVehicleByID(_ context.Context, id string) (*model.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return nil, repository.ErrVehicleNotFound
	}
	clone := *v
	return &clone, nil
}

func (f *fakeVehicleStore) ListVehicles(_ context.Context, filter repository.VehicleFilter) ([]*model.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var vehicles []*model.Vehicle
	for _, v := range f.vehicles {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(v.Name), needle) &&
				!strings.Contains(strings.ToLower(v.Location), needle) {
				continue
			}
		}
		if filter.Category != "" && v.Category != filter.Category {
			continue
		}
		clone := *v
		vehicles = append(vehicles, &clone)
	}

	sort.Slice(vehicles, func(i, j int) bool {
		var less bool
		switch filter.SortColumn {
		case "price_per_day":
			less = vehicles[i].PricePerDay < vehicles[j].PricePerDay
		case "name":
			less = vehicles[i].Name < vehicles[j].Name
		default:
			less = vehicles[i].CreatedAt.Before(vehicles[j].CreatedAt)
		}
		if filter.Descending {
			return !less
		}
		return less
	})

	if filter.Limit > 0 && len(vehicles) > filter.Limit {
		vehicles = vehicles[:filter.Limit]
	}
	return vehicles, nil
}

func (f *fakeVehicleStore) ListVehiclesByOwner(_ context.Context, ownerEmail string) ([]*model.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var vehicles []*model.Vehicle
	for _, v := range f.vehicles {
		if v.OwnerEmail == ownerEmail {
			clone := *v
			vehicles = append(vehicles, &clone)
		}
	}
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].CreatedAt.After(vehicles[j].CreatedAt)
	})
	return vehicles, nil
}

func (f *fakeVehicleStore) UpdateOwnedVehicle(_ context.Context, id, ownerEmail string, patch map[string]any) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.vehicles[id]
	if !ok || v.OwnerEmail != ownerEmail {
		return 0, nil
	}
	for column, value := range patch {
		switch column {
		case "name":
			v.Name = value.(string)
		case "model":
			v.Model = value.(string)
		case "category":
			v.Category = value.(string)
		case "location":
			v.Location = value.(string)
		case "price_per_day":
			v.PricePerDay = value.(float64)
		case "seat_count":
			v.SeatCount = value.(int)
		case "description":
			v.Description = value.(string)
		case "image_url":
			v.ImageURL = value.(string)
		case "features":
			v.Features = value.([]string)
		case "available":
			v.Available = value.(bool)
		}
	}
	return 1, nil
}

func (f *fakeVehicleStore) DeleteOwnedVehicle(_ context.Context, id, ownerEmail string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.vehicles[id]
	if !ok || v.OwnerEmail != ownerEmail {
		return 0, nil
	}
	delete(f.vehicles, id)
	return 1, nil
}

// fakeBookingStore is an in-memory BookingStore keyed by id.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[string]*model.Booking{}}
}

func (f *fakeBookingStore) InsertBooking(_ context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeBookingStore) ListBookingsByBuyer(_ context.Context, buyerEmail string) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var bookings []*model.Booking
	for _, b := range f.bookings {
		if b.BuyerEmail == buyerEmail {
			clone := *b
			bookings = append(bookings, &clone)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (f *fakeBookingStore) DeleteOwnedBooking(_ context.Context, id, buyerEmail string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok || b.BuyerEmail != buyerEmail {
		return 0, nil
	}
	delete(f.bookings, id)
	return 1, nil
}

// fakeVehicleCache records recent-list cache traffic.
type fakeVehicleCache struct {
	mu          sync.Mutex
	recent      []*model.Vehicle
	invalidated int
}

func (f *fakeVehicleCache) GetRecentVehicles(_ context.Context) ([]*model.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recent, nil
}

func (f *fakeVehicleCache) SetRecentVehicles(_ context.Context, vehicles []*model.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recent = vehicles
	return nil
}

func (f *fakeVehicleCache) InvalidateRecentVehicles(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recent = nil
	f.invalidated++
	return nil
}
