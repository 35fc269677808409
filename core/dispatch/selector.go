package dispatch

import (
	"github.com/kilianp07/taxisim/core/model"
	"github.com/kilianp07/taxisim/core/routing"
)

// CarSelector picks the car that should serve a pickup. cars is in id order
// and contains booked cars too. It returns nil when no car qualifies.
type CarSelector interface {
	Select(cars []*model.Car, pickup model.Location) *model.Car
}

// NearestSelector picks the free car with the smallest Manhattan distance to
// the pickup, breaking ties by the smallest car id.
type NearestSelector struct{}

// Select implements CarSelector.
func (NearestSelector) Select(cars []*model.Car, pickup model.Location) *model.Car {
	var best *model.Car
	bestDist := 0
	for _, c := range cars {
		if !c.Available() {
			continue
		}
		d := routing.Distance(pickup, c.Location)
		if best == nil || d < bestDist || (d == bestDist && c.ID < best.ID) {
			best, bestDist = c, d
		}
	}
	return best
}

// SelectorFunc adapts a function to CarSelector.
type SelectorFunc func(cars []*model.Car, pickup model.Location) *model.Car

// Select implements CarSelector.
func (f SelectorFunc) Select(cars []*model.Car, pickup model.Location) *model.Car {
	return f(cars, pickup)
}
