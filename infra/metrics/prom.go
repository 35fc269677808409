package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/taxisim/core/metrics"
)

// PromSink records per-car activity in Prometheus metrics.
type PromSink struct {
	bookings *prometheus.CounterVec
	trips    *prometheus.CounterVec
	distance *prometheus.CounterVec
	booked   *prometheus.GaugeVec
	duration prometheus.Histogram
	overrun  prometheus.Histogram
}

// NewPromSink registers car metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Metrics
// already registered by a previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	bookings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "taxi_car_bookings_total",
		Help: "Bookings assigned to each car",
	}, []string{"car_id"})
	trips := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "taxi_car_trips_total",
		Help: "Trips completed by each car",
	}, []string{"car_id"})
	distance := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "taxi_car_distance_total",
		Help: "Grid steps travelled by each car",
	}, []string{"car_id"})
	booked := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "taxi_car_booked",
		Help: "1 when the car is serving a booking",
	}, []string{"car_id"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "taxi_trip_duration_ticks",
		Help:    "Ticks between booking and arrival",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	overrun := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "taxi_trip_estimate_error_ticks",
		Help:    "Actual trip duration minus the quoted total time",
		Buckets: prometheus.LinearBuckets(-10, 2, 11),
	})

	var err error
	if bookings, err = registerVec(reg, bookings); err != nil {
		return nil, err
	}
	if trips, err = registerVec(reg, trips); err != nil {
		return nil, err
	}
	if distance, err = registerVec(reg, distance); err != nil {
		return nil, err
	}
	if err := reg.Register(booked); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			booked = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(overrun); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			overrun = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		bookings: bookings,
		trips:    trips,
		distance: distance,
		booked:   booked,
		duration: duration,
		overrun:  overrun,
	}, nil
}

func registerVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec), nil
		}
		return nil, err
	}
	return c, nil
}

// RecordBooking increments the booking counter of the assigned car.
func (s *PromSink) RecordBooking(ev coremetrics.BookingEvent) error {
	id := strconv.Itoa(ev.CarID)
	s.bookings.WithLabelValues(id).Inc()
	s.booked.WithLabelValues(id).Set(1)
	return nil
}

// RecordTrip counts the trip and observes its duration.
func (s *PromSink) RecordTrip(ev coremetrics.TripEvent) error {
	s.trips.WithLabelValues(strconv.Itoa(ev.CarID)).Inc()
	s.duration.Observe(float64(ev.Duration))
	s.overrun.Observe(float64(ev.Duration - ev.TotalTime))
	return nil
}

// RecordCarMove adds the step length to the car distance counter.
func (s *PromSink) RecordCarMove(ev coremetrics.CarMoveEvent) error {
	d := abs(ev.To.X-ev.From.X) + abs(ev.To.Y-ev.From.Y)
	if d > 0 {
		s.distance.WithLabelValues(strconv.Itoa(ev.CarID)).Add(float64(d))
	}
	return nil
}

// RecordCarPositions refreshes the booked gauge of every car.
func (s *PromSink) RecordCarPositions(evs []coremetrics.CarPositionEvent) error {
	for _, ev := range evs {
		v := 0.0
		if ev.Car.Booked {
			v = 1
		}
		s.booked.WithLabelValues(strconv.Itoa(ev.Car.ID)).Set(v)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
