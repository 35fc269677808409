package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/logger"
	coremetrics "github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/core/model"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled or the bus is closed.
func StartEventCollector(ctx context.Context, bus events.Subscriber, sink coremetrics.MetricsSink, log logger.Logger) {
	if bus == nil || sink == nil {
		return
	}
	log = logger.OrNop(log)
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := dispatchEvent(sink, ev, time.Now()); err != nil {
					log.Warnf("metrics sink: %v", err)
				}
			}
		}
	}()
}

func dispatchEvent(sink coremetrics.MetricsSink, ev events.Event, now time.Time) error {
	switch e := ev.(type) {
	case events.BookingCreated:
		return sink.RecordBooking(coremetrics.BookingEvent{
			BookingID:   e.Booking.ID,
			CarID:       e.Booking.CarID,
			CarName:     e.CarName,
			Source:      e.Booking.Source,
			Destination: e.Booking.Destination,
			TotalTime:   e.Booking.TotalTime,
			PathLength:  len(e.Booking.Path),
			SimTime:     e.Time,
			Time:        now,
		})
	case events.BookingRejected:
		if r, ok := sink.(coremetrics.RejectionRecorder); ok {
			return r.RecordRejection(coremetrics.RejectionEvent{
				Source:      e.Source,
				Destination: e.Destination,
				SimTime:     e.Time,
				Time:        now,
			})
		}
	case events.TripCompleted:
		if r, ok := sink.(coremetrics.TripRecorder); ok {
			return r.RecordTrip(coremetrics.TripEvent{
				BookingID: e.Booking.ID,
				CarID:     e.Booking.CarID,
				TotalTime: e.Booking.TotalTime,
				Duration:  e.Duration(),
				SimTime:   e.Time,
				Time:      now,
			})
		}
	case events.CarMoved:
		if r, ok := sink.(coremetrics.CarMoveRecorder); ok {
			return r.RecordCarMove(coremetrics.CarMoveEvent{
				CarID:   e.CarID,
				From:    e.From,
				To:      e.To,
				SimTime: e.Time,
				Time:    now,
			})
		}
	case events.TimeAdvanced:
		return recordPositions(sink, e.Cars, e.Time, now)
	case events.SimulationReset:
		return recordPositions(sink, e.Cars, 0, now)
	}
	return nil
}

func recordPositions(sink coremetrics.MetricsSink, cars []model.Car, simTime int, now time.Time) error {
	r, ok := sink.(coremetrics.CarPositionRecorder)
	if !ok {
		return nil
	}
	evs := make([]coremetrics.CarPositionEvent, len(cars))
	for i, c := range cars {
		evs[i] = coremetrics.CarPositionEvent{Car: c, SimTime: simTime, Time: now}
	}
	return r.RecordCarPositions(evs)
}
