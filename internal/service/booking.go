package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/travelease/travelease/internal/metrics"
	"github.com/travelease/travelease/internal/model"
)

// BookingService handles rental reservations and the buyer-ownership
// policy around their listing and deletion.
type BookingService struct {
	store   BookingStore
	metrics metrics.Recorder
}

// NewBookingService creates a BookingService.
func NewBookingService(store BookingStore, recorder metrics.Recorder) *BookingService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &BookingService{store: store, metrics: recorder}
}

// CreateBookingInput defines input for creating a booking. It carries no
// buyer field: the buyer is always the verified subject.
type CreateBookingInput struct {
	VehicleID  string
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice float64
}

// CreateBooking persists a reservation owned by the subject. The
// reference ULID doubles as a confirmation code shareable with the
// buyer.
func (s *BookingService) CreateBooking(ctx context.Context, subject string, input CreateBookingInput) (*model.Booking, error) {
	if err := validateID(input.VehicleID); err != nil {
		return nil, err
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrValidation)
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: endDate must be after startDate", ErrValidation)
	}
	if input.TotalPrice < 0 {
		return nil, fmt.Errorf("%w: totalPrice must not be negative", ErrValidation)
	}

	booking := &model.Booking{
		ID:         uuid.NewString(),
		Reference:  ulid.Make().String(),
		VehicleID:  input.VehicleID,
		BuyerEmail: subject,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		TotalPrice: input.TotalPrice,
		Status:     model.BookingStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.store.InsertBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.IncBookingCreated()
	return booking, nil
}

// ListMyBookings returns the subject's own bookings. The optional
// requestedEmail parameter must be empty or equal to the subject.
func (s *BookingService) ListMyBookings(ctx context.Context, subject, requestedEmail string) ([]*model.Booking, error) {
	if err := guardOwnerEmail(subject, requestedEmail); err != nil {
		return nil, err
	}

	bookings, err := s.store.ListBookingsByBuyer(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// DeleteMyBooking removes a booking under the compound (id, buyer)
// filter. Idempotent: a zero DeletedCount is a success.
func (s *BookingService) DeleteMyBooking(ctx context.Context, subject, id string) (*model.DeleteResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	deleted, err := s.store.DeleteOwnedBooking(ctx, id, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to delete booking: %w", err)
	}

	return &model.DeleteResult{DeletedCount: deleted}, nil
}
