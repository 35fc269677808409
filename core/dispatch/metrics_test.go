package dispatch

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRegistration(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)
	// touch metrics so they are exported
	bookingsTotal.Inc()
	bookingRejections.Inc()
	tripsCompleted.Inc()
	activeBookings.Set(1)
	simulationTime.Set(1)
	estimatedTime.Observe(2)
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[*mf.Name] = true
	}
	expected := []string{
		"taxi_bookings_total",
		"taxi_booking_rejections_total",
		"taxi_trips_completed_total",
		"taxi_active_bookings",
		"taxi_simulation_time",
		"taxi_booking_total_time_ticks",
	}
	for _, n := range expected {
		if !names[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}

func TestEngineUpdatesMetrics(t *testing.T) {
	ResetMetrics(prometheus.NewRegistry())
	t.Cleanup(func() { ResetMetrics(nil) })

	e, err := NewEngine(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	for i := 0; i < 4; i++ {
		_, _ = e.BookCar(loc(0, 0), loc(1, 0))
	}
	if got := testutil.ToFloat64(bookingsTotal); got != 3 {
		t.Errorf("bookings = %v, want 3", got)
	}
	if got := testutil.ToFloat64(bookingRejections); got != 1 {
		t.Errorf("rejections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(activeBookings); got != 3 {
		t.Errorf("active = %v, want 3", got)
	}

	e.IncrementTime()
	if got := testutil.ToFloat64(tripsCompleted); got != 3 {
		t.Errorf("completed = %v, want 3", got)
	}
	if got := testutil.ToFloat64(activeBookings); got != 0 {
		t.Errorf("active after tick = %v, want 0", got)
	}
	if got := testutil.ToFloat64(simulationTime); got != 1 {
		t.Errorf("time = %v, want 1", got)
	}

	e.Reset()
	if got := testutil.ToFloat64(simulationTime); got != 0 {
		t.Errorf("time after reset = %v, want 0", got)
	}
}
