package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/core/model"
)

func TestPromSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	_ = sink.RecordBooking(coremetrics.BookingEvent{CarID: 1})
	_ = sink.RecordBooking(coremetrics.BookingEvent{CarID: 1})
	_ = sink.RecordCarMove(coremetrics.CarMoveEvent{CarID: 1, From: model.Location{}, To: model.Location{X: 1}})
	_ = sink.RecordCarMove(coremetrics.CarMoveEvent{CarID: 1, From: model.Location{X: 1}, To: model.Location{X: 1, Y: 1}})
	_ = sink.RecordTrip(coremetrics.TripEvent{CarID: 1, Duration: 2, TotalTime: 2})

	if got := testutil.ToFloat64(sink.bookings.WithLabelValues("1")); got != 2 {
		t.Errorf("bookings = %v, want 2", got)
	}
	if got := testutil.ToFloat64(sink.distance.WithLabelValues("1")); got != 2 {
		t.Errorf("distance = %v, want 2", got)
	}
	if got := testutil.ToFloat64(sink.trips.WithLabelValues("1")); got != 1 {
		t.Errorf("trips = %v, want 1", got)
	}
	if got := testutil.ToFloat64(sink.booked.WithLabelValues("1")); got != 1 {
		t.Errorf("booked = %v, want 1", got)
	}

	_ = sink.RecordCarPositions([]coremetrics.CarPositionEvent{{Car: model.Car{ID: 1}}})
	if got := testutil.ToFloat64(sink.booked.WithLabelValues("1")); got != 0 {
		t.Errorf("booked after snapshot = %v, want 0", got)
	}
	if n := testutil.CollectAndCount(sink.duration); n != 1 {
		t.Errorf("duration histogram series = %d", n)
	}
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	s1, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first sink: %v", err)
	}
	s2, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second sink: %v", err)
	}
	_ = s1.RecordBooking(coremetrics.BookingEvent{CarID: 3})
	if got := testutil.ToFloat64(s2.bookings.WithLabelValues("3")); got != 1 {
		t.Errorf("shared counter = %v, want 1", got)
	}
}
