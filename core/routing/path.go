// Package routing computes grid distances and the deterministic paths cars
// follow between two locations.
package routing

import "github.com/kilianp07/taxisim/core/model"

// Distance returns the Manhattan distance between a and b.
func Distance(a, b model.Location) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Path returns the staircase path from start to end: first along the y axis
// at start.X, then along the x axis at end.Y. Both endpoints are included and
// consecutive points differ by one unit on one axis.
func Path(start, end model.Location) []model.Location {
	dx := abs(end.X - start.X)
	dy := abs(end.Y - start.Y)
	path := make([]model.Location, 0, dx+dy+1)

	stepY := sign(end.Y - start.Y)
	for i := 0; i <= dy; i++ {
		path = append(path, model.Location{X: start.X, Y: start.Y + i*stepY})
	}
	stepX := sign(end.X - start.X)
	for i := 1; i <= dx; i++ {
		path = append(path, model.Location{X: start.X + i*stepX, Y: end.Y})
	}
	return path
}

// CarPath returns the full path of a trip: from the car to the pickup point,
// then on to the destination. The pickup point appears once.
func CarPath(car, pickup, destination model.Location) []model.Location {
	path := Path(car, pickup)
	leg := Path(pickup, destination)
	if len(leg) > 0 {
		leg = leg[1:]
	}
	return append(path, leg...)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
