package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/taxisim/core/dispatch"
	"github.com/kilianp07/taxisim/core/model"
)

// BookingDef is a booking request submitted at simulation time At, before
// that tick is processed.
type BookingDef struct {
	At          int            `yaml:"at"`
	Source      model.Location `yaml:"source"`
	Destination model.Location `yaml:"destination"`
}

type Expected struct {
	Booked    int `yaml:"booked"`
	Rejected  int `yaml:"rejected"`
	Completed int `yaml:"completed"`
	FinalTime int `yaml:"final_time"`
}

type Scenario struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Fleet       []dispatch.FleetCar `yaml:"fleet,omitempty"`
	Ticks       int                 `yaml:"ticks"`
	Bookings    []BookingDef        `yaml:"bookings"`
	Expected    *Expected           `yaml:"expected,omitempty"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks the fleet and that every booking falls within the run.
func (sc *Scenario) Validate() error {
	if sc.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative")
	}
	if err := dispatch.ValidateFleet(sc.Fleet); err != nil {
		return err
	}
	for i, b := range sc.Bookings {
		if b.At < 0 || b.At > sc.Ticks {
			return fmt.Errorf("booking %d at %d outside [0,%d]", i, b.At, sc.Ticks)
		}
	}
	return nil
}
