package model

import "fmt"

// Location is a point on the unbounded integer grid the fleet drives on.
type Location struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Origin is where every car starts after a reset.
var Origin = Location{}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}
