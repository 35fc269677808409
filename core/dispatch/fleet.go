package dispatch

import (
	"fmt"
	"sort"

	"github.com/kilianp07/taxisim/core/model"
)

// DefaultFleet returns the reference fleet: three cars parked at the origin.
func DefaultFleet() []FleetCar {
	return []FleetCar{
		{ID: 1, Name: "Toyota Prius", Location: model.Origin},
		{ID: 2, Name: "Honda Civic", Location: model.Origin},
		{ID: 3, Name: "Ford Mustang", Location: model.Origin},
	}
}

// ValidateFleet rejects duplicate or non-positive ids and unnamed cars.
// An empty fleet is valid and means the reference fleet.
func ValidateFleet(fleet []FleetCar) error {
	seen := make(map[int]bool, len(fleet))
	for _, c := range fleet {
		if c.ID <= 0 {
			return fmt.Errorf("car id must be positive, got %d", c.ID)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate car id %d", c.ID)
		}
		if c.Name == "" {
			return fmt.Errorf("car %d has no name", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// buildCars instantiates free cars from the fleet definition in id order.
func buildCars(fleet []FleetCar) []*model.Car {
	cars := make([]*model.Car, 0, len(fleet))
	for _, f := range fleet {
		c := model.NewCar(f.ID, f.Name, f.Location)
		cars = append(cars, &c)
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	return cars
}
