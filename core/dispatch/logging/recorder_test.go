package logging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/model"
	"github.com/kilianp07/taxisim/internal/eventbus"
)

func TestRecordFromEvent(t *testing.T) {
	b := model.Booking{ID: "b1", CarID: 2, TotalTime: 4, BookedAt: 1, Destination: model.Location{X: 1, Y: 1}}
	now := time.Unix(10, 0)

	rec, ok := RecordFromEvent(events.BookingCreated{Booking: b, Time: 1}, now)
	require.True(t, ok)
	assert.Equal(t, StatusBooked, rec.Status)
	assert.Equal(t, "b1", rec.BookingID)
	assert.Equal(t, now, rec.Timestamp)

	rec, ok = RecordFromEvent(events.TripCompleted{Booking: b, Time: 5}, now)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, rec.Status)
	assert.Equal(t, 4, rec.Duration)

	rec, ok = RecordFromEvent(events.BookingRejected{Time: 3}, now)
	require.True(t, ok)
	assert.Equal(t, StatusRejected, rec.Status)
	assert.Zero(t, rec.CarID)

	rec, ok = RecordFromEvent(events.SimulationReset{}, now)
	require.True(t, ok)
	assert.Equal(t, StatusReset, rec.Status)
	assert.Zero(t, rec.SimTime)

	_, ok = RecordFromEvent(events.TimeAdvanced{Time: 2}, now)
	assert.False(t, ok)
}

func TestStartRecorder(t *testing.T) {
	bus := eventbus.New[events.Event](8)
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	done := StartRecorder(ctx, bus, store, nil)

	bus.Publish(events.TimeAdvanced{Time: 1})
	bus.Publish(events.BookingCreated{Booking: model.Booking{ID: "x", CarID: 1}, Time: 1})
	bus.Publish(events.TripCompleted{Booking: model.Booking{ID: "x", CarID: 1}, Time: 3})

	assert.Eventually(t, func() bool {
		out, _ := store.Query(context.Background(), LogQuery{})
		return len(out) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("recorder did not stop")
	}
}

func TestStartRecorderNilStore(t *testing.T) {
	done := StartRecorder(context.Background(), eventbus.New[events.Event](1), nil, nil)
	select {
	case <-done:
	default:
		t.Fatal("expected closed channel")
	}
}

func TestCurrentRun(t *testing.T) {
	recs := []TripRecord{
		{Status: StatusBooked, BookingID: "a"},
		{Status: StatusReset},
		{Status: StatusBooked, BookingID: "b"},
		{Status: StatusReset},
		{Status: StatusBooked, BookingID: "c"},
		{Status: StatusCompleted, BookingID: "c"},
	}
	cur := CurrentRun(recs)
	require.Len(t, cur, 2)
	assert.Equal(t, "c", cur[0].BookingID)

	assert.Empty(t, CurrentRun(recs[:4]))
	assert.Len(t, CurrentRun(recs[:1]), 1)
	assert.Nil(t, CurrentRun(nil))
}
