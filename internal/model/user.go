// Package model defines domain entities for the application.
package model

import "time"

// User represents a marketplace account. The email is the natural key:
// every owner-scoped resource references its owner by email, and a user
// may only ever mutate the record matching their verified email.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
