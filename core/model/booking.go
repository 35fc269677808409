package model

// Booking is an active trip assigned to a car.
type Booking struct {
	ID          string     `json:"booking_id"`
	CarID       int        `json:"car_id"`
	Source      Location   `json:"source"`
	Destination Location   `json:"destination"`
	Path        []Location `json:"path"`
	TotalTime   int        `json:"total_time"`
	// BookedAt is the simulation time at which the booking was created.
	BookedAt int `json:"booked_at"`
}

// Final returns the last location of the path, which is the destination
// for every booking built by the engine.
func (b Booking) Final() Location {
	if len(b.Path) == 0 {
		return b.Destination
	}
	return b.Path[len(b.Path)-1]
}

// Clone returns a copy that does not share the path backing array.
func (b Booking) Clone() Booking {
	b.Path = append([]Location(nil), b.Path...)
	return b
}
