// Package metrics provides lightweight operational counters.
package metrics

// Recorder records application events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	IncUserCreated()
	IncVehicleCreated()
	IncBookingCreated()
	IncAuthFailure()
}
