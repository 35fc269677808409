package metrics

import (
	"errors"
	"testing"
)

type recordSink struct {
	count int
}

func (r *recordSink) RecordBooking(BookingEvent) error {
	r.count++
	return nil
}

func (r *recordSink) RecordTrip(TripEvent) error {
	r.count++
	return nil
}

type failingSink struct{}

func (failingSink) RecordBooking(BookingEvent) error { return errors.New("boom") }

// TestMultiSink ensures events are forwarded to all sinks and optional
// recorders are skipped when a sink does not implement them.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordBooking(BookingEvent{}); err != nil {
		t.Fatalf("record booking: %v", err)
	}
	if err := m.RecordTrip(TripEvent{}); err != nil {
		t.Fatalf("record trip: %v", err)
	}
	if err := m.RecordCarMove(CarMoveEvent{}); err != nil {
		t.Fatalf("record move: %v", err)
	}
	if err := m.RecordRejection(RejectionEvent{}); err != nil {
		t.Fatalf("record rejection: %v", err)
	}
	if err := m.RecordCarPositions(nil); err != nil {
		t.Fatalf("record positions: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("events not forwarded: %d %d", s1.count, s2.count)
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	s := &recordSink{}
	m := NewMultiSink(failingSink{}, s)
	if err := m.RecordBooking(BookingEvent{}); err == nil {
		t.Fatal("expected error")
	}
	if s.count != 0 {
		t.Fatalf("sink after failure should not be called")
	}
}
