package metrics

// Noop is a Recorder that discards all events.
type Noop struct{}

// NewNoop creates a no-op Recorder.
func NewNoop() *Noop {
	return &Noop{}
}

func (*Noop) IncUserCreated()    {}
func (*Noop) IncVehicleCreated() {}
func (*Noop) IncBookingCreated() {}
func (*Noop) IncAuthFailure()    {}
