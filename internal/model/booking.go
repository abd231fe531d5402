package model

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid checks if the booking status is a known value.
func (s BookingStatus) IsValid() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusCancelled
}

// Booking represents a rental reservation. BuyerEmail is always set
// server-side from the authenticated subject. Reference is a ULID
// shared with the buyer as a confirmation code.
type Booking struct {
	ID         string        `json:"id"`
	Reference  string        `json:"reference"`
	VehicleID  string        `json:"vehicleId"`
	BuyerEmail string        `json:"buyerEmail"`
	StartDate  time.Time     `json:"startDate"`
	EndDate    time.Time     `json:"endDate"`
	TotalPrice float64       `json:"totalPrice"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}
