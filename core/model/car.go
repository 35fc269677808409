package model

// NoPath marks a car that is not following a booking path.
const NoPath = -1

// Car is a vehicle of the simulated fleet.
type Car struct {
	ID       int      `json:"car_id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Booked   bool     `json:"-"`
	// PathIndex is the offset of Location in the active booking path, or
	// NoPath when the car is free.
	PathIndex int `json:"-"`
}

// NewCar returns a free car parked at loc.
func NewCar(id int, name string, loc Location) Car {
	return Car{ID: id, Name: name, Location: loc, PathIndex: NoPath}
}

// Available reports whether the car can accept a booking.
func (c Car) Available() bool {
	return !c.Booked
}

// OnPath reports whether the car is currently following a booking path.
func (c Car) OnPath() bool {
	return c.PathIndex != NoPath
}
