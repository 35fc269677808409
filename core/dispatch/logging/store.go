package logging

import (
	"context"
	"time"

	"github.com/kilianp07/taxisim/core/model"
)

// TripStatus is the lifecycle stage a TripRecord describes.
type TripStatus string

const (
	StatusBooked    TripStatus = "booked"
	StatusRejected  TripStatus = "rejected"
	StatusCompleted TripStatus = "completed"
	// StatusReset marks a simulation reset; later records belong to a new
	// run whose clock restarted at 0.
	StatusReset TripStatus = "reset"
)

// TripRecord captures one booking lifecycle event.
type TripRecord struct {
	Timestamp   time.Time      `json:"timestamp"`
	Status      TripStatus     `json:"status"`
	SimTime     int            `json:"sim_time"`
	BookingID   string         `json:"booking_id,omitempty"`
	CarID       int            `json:"car_id,omitempty"`
	Source      model.Location `json:"source"`
	Destination model.Location `json:"destination"`
	TotalTime   int            `json:"total_time"`
	BookedAt    int            `json:"booked_at"`
	// Duration is the number of ticks between booking and completion.
	Duration int `json:"duration,omitempty"`
}

// LogQuery defines filters for retrieving records. Zero values match
// everything; End of zero means no upper bound.
type LogQuery struct {
	CarID  int
	Status TripStatus
	Start  int
	End    int
}

// Match reports whether r satisfies every filter of q.
func (q LogQuery) Match(r TripRecord) bool {
	if q.CarID != 0 && r.CarID != q.CarID {
		return false
	}
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	if r.SimTime < q.Start {
		return false
	}
	if q.End > 0 && r.SimTime > q.End {
		return false
	}
	return true
}

// LogStore persists TripRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec TripRecord) error
	Query(ctx context.Context, q LogQuery) ([]TripRecord, error)
	Close() error
}

// CurrentRun returns the records appended after the last reset marker.
// recs must be in append order, as every LogStore returns them.
func CurrentRun(recs []TripRecord) []TripRecord {
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].Status == StatusReset {
			return recs[i+1:]
		}
	}
	return recs
}
