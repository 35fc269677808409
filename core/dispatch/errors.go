package dispatch

import "errors"

var (
	// ErrCarNotFound is returned when a car id is unknown.
	ErrCarNotFound = errors.New("car not found")
	// ErrNoAvailableCar is returned when every car is booked.
	ErrNoAvailableCar = errors.New("no available car")
)
