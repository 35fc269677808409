package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBooking forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordBooking(ev BookingEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordBooking(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRejection forwards rejections.
func (m *MultiSink) RecordRejection(ev RejectionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RejectionRecorder); ok {
			if err := rec.RecordRejection(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordTrip forwards completed trips.
func (m *MultiSink) RecordTrip(ev TripEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(TripRecorder); ok {
			if err := rec.RecordTrip(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordCarMove forwards car steps.
func (m *MultiSink) RecordCarMove(ev CarMoveEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(CarMoveRecorder); ok {
			if err := rec.RecordCarMove(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordCarPositions forwards fleet snapshots.
func (m *MultiSink) RecordCarPositions(evs []CarPositionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(CarPositionRecorder); ok {
			if err := rec.RecordCarPositions(evs); err != nil {
				return err
			}
		}
	}
	return nil
}
