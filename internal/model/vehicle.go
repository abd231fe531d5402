package model

import "time"

// Vehicle categories accepted by the listing filter.
const (
	CategoryCar        = "car"
	CategorySUV        = "suv"
	CategoryVan        = "van"
	CategoryMotorcycle = "motorcycle"
)

// Vehicle represents a rentable listing. OwnerEmail is always set
// server-side from the authenticated subject; a client-supplied value
// is discarded before persistence.
type Vehicle struct {
	ID          string    `json:"id"`
	OwnerEmail  string    `json:"ownerEmail"`
	Name        string    `json:"name"`
	Model       string    `json:"model,omitempty"`
	Category    string    `json:"category,omitempty"`
	Location    string    `json:"location,omitempty"`
	PricePerDay float64   `json:"pricePerDay"`
	SeatCount   int       `json:"seatCount,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageURL,omitempty"`
	Features    []string  `json:"features,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
