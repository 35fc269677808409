package logging

import (
	"context"
	"time"

	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/logger"
)

// RecordFromEvent converts a booking lifecycle event or a reset into a
// TripRecord. Other events return false.
func RecordFromEvent(ev events.Event, now time.Time) (TripRecord, bool) {
	switch e := ev.(type) {
	case events.BookingCreated:
		return TripRecord{
			Timestamp:   now,
			Status:      StatusBooked,
			SimTime:     e.Time,
			BookingID:   e.Booking.ID,
			CarID:       e.Booking.CarID,
			Source:      e.Booking.Source,
			Destination: e.Booking.Destination,
			TotalTime:   e.Booking.TotalTime,
			BookedAt:    e.Booking.BookedAt,
		}, true
	case events.BookingRejected:
		return TripRecord{
			Timestamp:   now,
			Status:      StatusRejected,
			SimTime:     e.Time,
			Source:      e.Source,
			Destination: e.Destination,
			BookedAt:    e.Time,
		}, true
	case events.TripCompleted:
		return TripRecord{
			Timestamp:   now,
			Status:      StatusCompleted,
			SimTime:     e.Time,
			BookingID:   e.Booking.ID,
			CarID:       e.Booking.CarID,
			Source:      e.Booking.Source,
			Destination: e.Booking.Destination,
			TotalTime:   e.Booking.TotalTime,
			BookedAt:    e.Booking.BookedAt,
			Duration:    e.Duration(),
		}, true
	case events.SimulationReset:
		return TripRecord{Timestamp: now, Status: StatusReset}, true
	}
	return TripRecord{}, false
}

// StartRecorder subscribes to the bus and appends every booking lifecycle
// event to store. It stops when ctx is canceled or the bus is closed; the
// returned channel is closed once the last record has been written.
func StartRecorder(ctx context.Context, bus events.Subscriber, store LogStore, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || store == nil {
		close(done)
		return done
	}
	log = logger.OrNop(log)
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				rec, ok := RecordFromEvent(ev, time.Now())
				if !ok {
					continue
				}
				if err := store.Append(ctx, rec); err != nil {
					log.Errorf("trip log append: %v", err)
				}
			}
		}
	}()
	return done
}
