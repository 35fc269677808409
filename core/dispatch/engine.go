package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/logger"
	"github.com/kilianp07/taxisim/core/model"
	"github.com/kilianp07/taxisim/core/routing"
)

// Engine owns the simulation state: the fleet, the active bookings and the
// clock. All methods are safe for concurrent use; each one runs under a
// single lock so observers never see a car booked without its booking.
type Engine struct {
	mu       sync.Mutex
	fleet    []FleetCar
	cars     []*model.Car
	bookings []*model.Booking
	now      int

	selector CarSelector
	bus      events.Publisher
	log      logger.Logger
	newID    func() string
}

// NewEngine builds an engine for the given fleet, already reset. An empty
// fleet means DefaultFleet. selector, bus and log may be nil.
func NewEngine(fleet []FleetCar, selector CarSelector, bus events.Publisher, log logger.Logger) (*Engine, error) {
	if len(fleet) == 0 {
		fleet = DefaultFleet()
	}
	if err := ValidateFleet(fleet); err != nil {
		return nil, fmt.Errorf("fleet: %w", err)
	}
	if selector == nil {
		selector = NearestSelector{}
	}
	e := &Engine{
		fleet:    append([]FleetCar(nil), fleet...),
		selector: selector,
		bus:      bus,
		log:      logger.OrNop(log),
		newID:    uuid.NewString,
	}
	e.reset()
	return e, nil
}

// SetIDGenerator replaces the booking id generator.
func (e *Engine) SetIDGenerator(f func() string) {
	if f == nil {
		return
	}
	e.mu.Lock()
	e.newID = f
	e.mu.Unlock()
}

// ListCars returns the cars whose booked flag equals booked, in id order.
func (e *Engine) ListCars(booked bool) []model.Car {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := make([]model.Car, 0, len(e.cars))
	for _, c := range e.cars {
		if c.Booked == booked {
			res = append(res, *c)
		}
	}
	return res
}

// Cars returns every car in id order.
func (e *Engine) Cars() []model.Car {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotCars()
}

// GetCar returns the car with the given id or ErrCarNotFound.
func (e *Engine) GetCar(id int) (model.Car, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.car(id)
	if c == nil {
		return model.Car{}, fmt.Errorf("car %d: %w", id, ErrCarNotFound)
	}
	return *c, nil
}

// BookCar dispatches the selected car to pickup and on to destination.
// It returns ErrNoAvailableCar when every car is booked.
func (e *Engine) BookCar(pickup, destination model.Location) (model.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var car *model.Car
	if sel := e.selector.Select(e.cars, pickup); sel != nil {
		car = e.car(sel.ID)
	}
	if car == nil || !car.Available() {
		bookingRejections.Inc()
		e.log.Infof("no car available for pickup %s at t=%d", pickup, e.now)
		e.publish(events.BookingRejected{Source: pickup, Destination: destination, Time: e.now})
		return model.Booking{}, ErrNoAvailableCar
	}

	start := car.Location
	b := &model.Booking{
		ID:          e.newID(),
		CarID:       car.ID,
		Source:      pickup,
		Destination: destination,
		// Distance to the pickup plus the trip itself, measured from the pickup.
		TotalTime: routing.Distance(pickup, start) + routing.Distance(pickup, destination),
		Path:      routing.CarPath(start, pickup, destination),
		BookedAt:  e.now,
	}
	car.Booked = true
	car.PathIndex = 0
	e.bookings = append(e.bookings, b)

	bookingsTotal.Inc()
	estimatedTime.Observe(float64(b.TotalTime))
	activeBookings.Set(float64(len(e.bookings)))
	e.log.Debugw("booking created", map[string]any{
		"booking_id": b.ID,
		"car_id":     b.CarID,
		"source":     pickup.String(),
		"dest":       destination.String(),
		"total_time": b.TotalTime,
		"path_len":   len(b.Path),
	})
	e.publish(events.BookingCreated{Booking: b.Clone(), CarName: car.Name, Time: e.now})
	return b.Clone(), nil
}

// IncrementTime advances the clock by one tick and moves every booked car
// one step along its path. Trips that reach their last path element are
// completed once every booking has been processed, so a completion never
// causes another booking to be skipped. It returns the new time.
func (e *Engine) IncrementTime() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.now++
	var done []*model.Booking
	for _, b := range e.bookings {
		car := e.car(b.CarID)
		if car == nil {
			continue
		}
		last := len(b.Path) - 1
		if car.PathIndex < last {
			from := car.Location
			car.PathIndex++
			car.Location = b.Path[car.PathIndex]
			e.publish(events.CarMoved{CarID: car.ID, From: from, To: car.Location, Time: e.now})
		}
		if car.PathIndex >= last {
			car.Booked = false
			car.PathIndex = model.NoPath
			done = append(done, b)
		}
	}
	if len(done) > 0 {
		e.bookings = removeBookings(e.bookings, done)
		for _, b := range done {
			tripsCompleted.Inc()
			e.log.Infof("car %d completed booking %s at t=%d", b.CarID, b.ID, e.now)
			e.publish(events.TripCompleted{Booking: b.Clone(), Time: e.now})
		}
	}

	simulationTime.Set(float64(e.now))
	activeBookings.Set(float64(len(e.bookings)))
	e.publish(events.TimeAdvanced{Time: e.now, Cars: e.snapshotCars()})
	return e.now
}

// Reset reinstates the fleet, drops every booking and sets the clock to 0.
// It returns the time right after the reset.
func (e *Engine) Reset() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
	e.log.Infof("simulation reset with %d cars", len(e.cars))
	e.publish(events.SimulationReset{Cars: e.snapshotCars()})
	return e.now
}

// Bookings returns the active bookings in creation order.
func (e *Engine) Bookings() []model.Booking {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := make([]model.Booking, 0, len(e.bookings))
	for _, b := range e.bookings {
		res = append(res, b.Clone())
	}
	return res
}

// CurrentTime returns the simulation time.
func (e *Engine) CurrentTime() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

// Run advances the clock every interval until ctx is cancelled. A
// non-positive interval returns immediately.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.IncrementTime()
		}
	}
}

func (e *Engine) reset() {
	e.cars = buildCars(e.fleet)
	e.bookings = nil
	e.now = 0
	activeBookings.Set(0)
	simulationTime.Set(0)
}

func (e *Engine) car(id int) *model.Car {
	for _, c := range e.cars {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (e *Engine) snapshotCars() []model.Car {
	res := make([]model.Car, len(e.cars))
	for i, c := range e.cars {
		res[i] = *c
	}
	return res
}

func (e *Engine) publish(ev events.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

func removeBookings(all, done []*model.Booking) []*model.Booking {
	drop := make(map[*model.Booking]bool, len(done))
	for _, b := range done {
		drop[b] = true
	}
	kept := make([]*model.Booking, 0, len(all)-len(done))
	for _, b := range all {
		if !drop[b] {
			kept = append(kept, b)
		}
	}
	return kept
}
