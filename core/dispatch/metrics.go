package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	bookingsTotal     prometheus.Counter
	bookingRejections prometheus.Counter
	tripsCompleted    prometheus.Counter
	activeBookings    prometheus.Gauge
	simulationTime    prometheus.Gauge
	estimatedTime     prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Counter, prometheus.Counter, prometheus.Counter, prometheus.Gauge, prometheus.Gauge, prometheus.Histogram) {
	booked := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "taxi_bookings_total",
		Help: "Number of accepted bookings",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "taxi_booking_rejections_total",
		Help: "Number of booking requests refused because every car was booked",
	})
	completed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "taxi_trips_completed_total",
		Help: "Number of trips whose car reached the destination",
	})
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "taxi_active_bookings",
		Help: "Bookings currently in progress",
	})
	clock := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "taxi_simulation_time",
		Help: "Current simulation time in ticks",
	})
	estimate := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "taxi_booking_total_time_ticks",
		Help:    "Total time quoted for accepted bookings",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	return booked, rejected, completed, active, clock, estimate
}

func init() {
	bookingsTotal, bookingRejections, tripsCompleted, activeBookings, simulationTime, estimatedTime = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers engine metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(bookingsTotal, bookingRejections, tripsCompleted, activeBookings, simulationTime, estimatedTime)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	bookingsTotal, bookingRejections, tripsCompleted, activeBookings, simulationTime, estimatedTime = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
