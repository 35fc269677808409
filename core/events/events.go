package events

import "github.com/kilianp07/taxisim/core/model"

// Event is implemented by every simulation event. SimTime returns the
// simulation time at which the event happened.
type Event interface {
	SimTime() int
}

// Publisher accepts events for fan-out to observers.
type Publisher interface {
	Publish(Event)
}

// BookingCreated is published when a booking is accepted.
type BookingCreated struct {
	Booking model.Booking
	CarName string
	Time    int
}

func (e BookingCreated) SimTime() int { return e.Time }

// BookingRejected is published when no car could serve a request.
type BookingRejected struct {
	Source      model.Location
	Destination model.Location
	Time        int
}

func (e BookingRejected) SimTime() int { return e.Time }

// CarMoved is published for every step a booked car takes.
type CarMoved struct {
	CarID int
	From  model.Location
	To    model.Location
	Time  int
}

func (e CarMoved) SimTime() int { return e.Time }

// TripCompleted is published when a car reaches the end of its path.
type TripCompleted struct {
	Booking model.Booking
	Time    int
}

func (e TripCompleted) SimTime() int { return e.Time }

// Duration returns the number of ticks the trip took.
func (e TripCompleted) Duration() int { return e.Time - e.Booking.BookedAt }

// TimeAdvanced is published once per tick, after all cars moved.
type TimeAdvanced struct {
	Time int
	Cars []model.Car
}

func (e TimeAdvanced) SimTime() int { return e.Time }

// SimulationReset is published after the fleet has been reinstated.
type SimulationReset struct {
	Cars []model.Car
}

func (e SimulationReset) SimTime() int { return 0 }

// Subscriber hands out event streams. internal/eventbus.Bus[Event]
// implements both Publisher and Subscriber.
type Subscriber interface {
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
}
