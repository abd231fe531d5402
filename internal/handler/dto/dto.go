// Package dto provides Data Transfer Objects for API requests and
// responses.
package dto

import "time"

// CreateUserRequest represents the body for registering a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	PhotoURL string `json:"photoURL,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// UpdateUserRequest represents a partial profile patch. Absent fields
// are left untouched. Email and id are not part of the shape; the
// record is always selected by the verified subject.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photoURL,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// CreateVehicleRequest represents the body for creating a listing.
// OwnerEmail is accepted on the wire for frontend convenience but is
// never read: ownership comes from the authenticated subject.
type CreateVehicleRequest struct {
	OwnerEmail  string   `json:"ownerEmail,omitempty"`
	Name        string   `json:"name"`
	Model       string   `json:"model,omitempty"`
	Category    string   `json:"category,omitempty"`
	Location    string   `json:"location,omitempty"`
	PricePerDay float64  `json:"pricePerDay"`
	SeatCount   int      `json:"seatCount,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageURL,omitempty"`
	Features    []string `json:"features,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}

// UpdateVehicleRequest represents a partial listing patch.
type UpdateVehicleRequest struct {
	Name        *string   `json:"name,omitempty"`
	Model       *string   `json:"model,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Location    *string   `json:"location,omitempty"`
	PricePerDay *float64  `json:"pricePerDay,omitempty"`
	SeatCount   *int      `json:"seatCount,omitempty"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageURL,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	Available   *bool     `json:"available,omitempty"`
}

// CreateBookingRequest represents the body for creating a booking.
// BuyerEmail is accepted on the wire but never read; the buyer is the
// authenticated subject.
type CreateBookingRequest struct {
	BuyerEmail string    `json:"buyerEmail,omitempty"`
	VehicleID  string    `json:"vehicleId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	TotalPrice float64   `json:"totalPrice"`
}

// TokenRequest represents the body for local token issuance.
type TokenRequest struct {
	Email string `json:"email"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse carries an informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
