package metrics

import (
	"time"

	"github.com/kilianp07/taxisim/core/model"
)

// BookingEvent describes an accepted booking.
type BookingEvent struct {
	BookingID   string
	CarID       int
	CarName     string
	Source      model.Location
	Destination model.Location
	TotalTime   int
	PathLength  int
	SimTime     int
	Time        time.Time
}

// MetricsSink records bookings for observability purposes.
type MetricsSink interface {
	RecordBooking(ev BookingEvent) error
}

// RejectionEvent describes a request no car could serve.
type RejectionEvent struct {
	Source      model.Location
	Destination model.Location
	SimTime     int
	Time        time.Time
}

// RejectionRecorder records refused booking requests.
type RejectionRecorder interface {
	RecordRejection(ev RejectionEvent) error
}

// TripEvent describes a completed trip.
type TripEvent struct {
	BookingID string
	CarID     int
	TotalTime int
	// Duration is the number of ticks the trip actually took.
	Duration int
	SimTime  int
	Time     time.Time
}

// TripRecorder records completed trips.
type TripRecorder interface {
	RecordTrip(ev TripEvent) error
}

// CarMoveEvent is one grid step of a booked car.
type CarMoveEvent struct {
	CarID   int
	From    model.Location
	To      model.Location
	SimTime int
	Time    time.Time
}

// CarMoveRecorder records car steps.
type CarMoveRecorder interface {
	RecordCarMove(ev CarMoveEvent) error
}

// CarPositionEvent is a snapshot of a car taken after a tick.
type CarPositionEvent struct {
	Car     model.Car
	SimTime int
	Time    time.Time
}

// CarPositionRecorder records fleet snapshots.
type CarPositionRecorder interface {
	RecordCarPositions(evs []CarPositionEvent) error
}

// NopSink implements MetricsSink and every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordBooking(BookingEvent) error            { return nil }
func (NopSink) RecordRejection(RejectionEvent) error        { return nil }
func (NopSink) RecordTrip(TripEvent) error                  { return nil }
func (NopSink) RecordCarMove(CarMoveEvent) error            { return nil }
func (NopSink) RecordCarPositions([]CarPositionEvent) error { return nil }
