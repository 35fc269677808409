package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/core/model"
)

type bodyRecorder struct {
	mu     sync.Mutex
	bodies []string
}

func (b *bodyRecorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies = append(b.bodies, strings.TrimSpace(string(data)))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInfluxSink_RecordBooking(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	now := time.Now()
	ev := coremetrics.BookingEvent{BookingID: "b1", CarID: 2, TotalTime: 5, PathLength: 6, SimTime: 3, Time: now}
	if err := sink.RecordBooking(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("booking_created").
		AddTag("car_id", "2").
		AddTag("booking_id", "b1").
		AddField("total_time", 5).
		AddField("path_length", 6).
		AddField("sim_time", 3).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(rec.bodies) != 1 || rec.bodies[0] != expected {
		t.Errorf("unexpected bodies: %#v", rec.bodies)
	}
}

func TestInfluxSink_RecordTrip(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(srv.URL+"/api/v2/write", "token", "org", "bucket")
	defer sink.Close()
	now := time.Now()
	if err := sink.RecordTrip(coremetrics.TripEvent{BookingID: "b1", CarID: 1, TotalTime: 4, Duration: 4, SimTime: 9, Time: now}); err != nil {
		t.Fatalf("record: %v", err)
	}
	p := write.NewPointWithMeasurement("trip_completed").
		AddTag("car_id", "1").
		AddTag("booking_id", "b1").
		AddField("duration", 4).
		AddField("total_time", 4).
		AddField("sim_time", 9).
		SetTime(now)
	exp := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(rec.bodies) != 1 || rec.bodies[0] != exp {
		t.Errorf("bodies: %#v", rec.bodies)
	}
}

func TestInfluxSink_RecordRejection(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	now := time.Now()
	ev := coremetrics.RejectionEvent{Source: model.Location{X: 1, Y: 2}, Destination: model.Location{X: 3, Y: 4}, SimTime: 1, Time: now}
	if err := sink.RecordRejection(ev); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(rec.bodies) != 1 || !strings.HasPrefix(rec.bodies[0], "booking_rejected ") {
		t.Errorf("bodies: %#v", rec.bodies)
	}
	if !strings.Contains(rec.bodies[0], `source="(1,2)"`) {
		t.Errorf("missing source field: %s", rec.bodies[0])
	}
}

func TestInfluxSink_RecordCarPositions(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	now := time.Now()
	cars := []model.Car{
		{ID: 1, Name: "a", Location: model.Location{X: 1, Y: 0}, Booked: true},
		{ID: 2, Name: "b", Location: model.Location{X: 0, Y: 0}},
	}
	evs := make([]coremetrics.CarPositionEvent, len(cars))
	for i, c := range cars {
		evs[i] = coremetrics.CarPositionEvent{Car: c, SimTime: 2, Time: now}
	}
	if err := sink.RecordCarPositions(evs); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(rec.bodies) != 1 {
		t.Fatalf("expected one batched write, got %d", len(rec.bodies))
	}
	lines := strings.Split(rec.bodies[0], "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %#v", lines)
	}
	for i, c := range cars {
		prefix := "car_position,car_id=" + strconv.Itoa(c.ID) + " "
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
		if !strings.Contains(lines[i], "x="+strconv.Itoa(c.Location.X)+"i") {
			t.Errorf("line %d missing x field: %q", i, lines[i])
		}
	}
	if err := sink.RecordCarPositions(nil); err != nil || len(rec.bodies) != 1 {
		t.Errorf("empty snapshot should not write")
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
