package scenarios

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kilianp07/taxisim/core/dispatch"
	"github.com/kilianp07/taxisim/core/dispatch/logging"
	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/model"
	"github.com/kilianp07/taxisim/core/stats"
)

// Result is the outcome of a replayed scenario.
type Result struct {
	Name      string
	FinalTime int
	Trips     []logging.TripRecord
	// Trajectories holds, per car id, the car location at every time from
	// 0 to FinalTime.
	Trajectories map[int][]model.Location
	Summary      stats.Summary
}

// tracer turns engine events into trip records and trajectories as they
// are published.
type tracer struct {
	store *logging.MemoryStore
	traj  map[int][]model.Location
	err   error
}

func (t *tracer) Publish(ev events.Event) {
	if rec, ok := logging.RecordFromEvent(ev, time.Unix(int64(ev.SimTime()), 0).UTC()); ok {
		if err := t.store.Append(context.Background(), rec); err != nil && t.err == nil {
			t.err = err
		}
	}
	if ta, ok := ev.(events.TimeAdvanced); ok {
		for _, c := range ta.Cars {
			t.traj[c.ID] = append(t.traj[c.ID], c.Location)
		}
	}
}

// Run replays sc against a fresh engine. Bookings are submitted in file
// order at their time, then the clock advances until Ticks.
func Run(sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	tr := &tracer{store: logging.NewMemoryStore(), traj: map[int][]model.Location{}}
	eng, err := dispatch.NewEngine(sc.Fleet, nil, tr, nil)
	if err != nil {
		return nil, err
	}
	n := 0
	eng.SetIDGenerator(func() string {
		n++
		return fmt.Sprintf("%s-%d", sc.Name, n)
	})
	for _, c := range eng.Cars() {
		tr.traj[c.ID] = []model.Location{c.Location}
	}

	pending := append([]BookingDef(nil), sc.Bookings...)
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].At < pending[j].At })
	for now := 0; ; now++ {
		for len(pending) > 0 && pending[0].At == now {
			b := pending[0]
			pending = pending[1:]
			if _, err := eng.BookCar(b.Source, b.Destination); err != nil && !errors.Is(err, dispatch.ErrNoAvailableCar) {
				return nil, err
			}
		}
		if now == sc.Ticks {
			break
		}
		eng.IncrementTime()
	}
	if tr.err != nil {
		return nil, tr.err
	}

	trips, err := tr.store.Query(context.Background(), logging.LogQuery{})
	if err != nil {
		return nil, err
	}
	return &Result{
		Name:         sc.Name,
		FinalTime:    eng.CurrentTime(),
		Trips:        trips,
		Trajectories: tr.traj,
		Summary:      stats.Summarize(trips),
	}, nil
}

// Check compares res with the scenario expectations, if any.
func (sc *Scenario) Check(res *Result) error {
	if sc.Expected == nil {
		return nil
	}
	got := Expected{
		Booked:    res.Summary.Bookings,
		Rejected:  res.Summary.Rejections,
		Completed: res.Summary.Completed,
		FinalTime: res.FinalTime,
	}
	if got != *sc.Expected {
		return fmt.Errorf("scenario %s: expected %+v, got %+v", sc.Name, *sc.Expected, got)
	}
	return nil
}
