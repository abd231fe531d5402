package metrics

import "sync/atomic"

// InMemory is a Recorder backed by atomic counters. Useful for tests
// and for exposing counts on an admin surface.
type InMemory struct {
	usersCreated    atomic.Int64
	vehiclesCreated atomic.Int64
	bookingsCreated atomic.Int64
	authFailures    atomic.Int64
}

// NewInMemory creates an in-memory Recorder.
func NewInMemory() *InMemory {
	return &InMemory{}
}

func (m *InMemory) IncUserCreated()    { m.usersCreated.Add(1) }
func (m *InMemory) IncVehicleCreated() { m.vehiclesCreated.Add(1) }
func (m *InMemory) IncBookingCreated() { m.bookingsCreated.Add(1) }
func (m *InMemory) IncAuthFailure()    { m.authFailures.Add(1) }

// UsersCreated returns the created-user count.
func (m *InMemory) UsersCreated() int64 { return m.usersCreated.Load() }

// VehiclesCreated returns the created-vehicle count.
func (m *InMemory) VehiclesCreated() int64 { return m.vehiclesCreated.Load() }

// BookingsCreated returns the created-booking count.
func (m *InMemory) BookingsCreated() int64 { return m.bookingsCreated.Load() }

// AuthFailures returns the failed-authentication count.
func (m *InMemory) AuthFailures() int64 { return m.authFailures.Load() }
