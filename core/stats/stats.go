// Package stats summarises trip log records.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/taxisim/core/dispatch/logging"
)

// Summary aggregates bookings and completed trips.
type Summary struct {
	Bookings   int `json:"bookings"`
	Rejections int `json:"rejections"`
	Completed  int `json:"completed"`
	Resets     int `json:"resets"`
	// Abandoned counts bookings still active when a reset dropped them.
	Abandoned int `json:"abandoned"`
	// Durations are in ticks, measured on completed trips.
	MeanDuration   float64 `json:"mean_duration"`
	StdDevDuration float64 `json:"stddev_duration"`
	P95Duration    float64 `json:"p95_duration"`
	// MeanTotalTime averages the total time quoted at booking.
	MeanTotalTime float64     `json:"mean_total_time"`
	TripsPerCar   map[int]int `json:"trips_per_car"`
}

// Summarize computes a Summary over recs, which must be in append order.
func Summarize(recs []logging.TripRecord) Summary {
	s := Summary{TripsPerCar: map[int]int{}}
	var durations, quoted []float64
	open := map[string]bool{}
	for _, r := range recs {
		switch r.Status {
		case logging.StatusBooked:
			s.Bookings++
			open[r.BookingID] = true
			quoted = append(quoted, float64(r.TotalTime))
		case logging.StatusRejected:
			s.Rejections++
		case logging.StatusReset:
			s.Resets++
			s.Abandoned += len(open)
			open = map[string]bool{}
		case logging.StatusCompleted:
			s.Completed++
			delete(open, r.BookingID)
			s.TripsPerCar[r.CarID]++
			durations = append(durations, float64(r.Duration))
		}
	}
	if len(quoted) > 0 {
		s.MeanTotalTime = stat.Mean(quoted, nil)
	}
	if len(durations) == 0 {
		return s
	}
	s.MeanDuration = stat.Mean(durations, nil)
	if len(durations) > 1 {
		s.StdDevDuration = stat.StdDev(durations, nil)
	}
	sort.Float64s(durations)
	s.P95Duration = stat.Quantile(0.95, stat.Empirical, durations, nil)
	return s
}
