package dispatch

import (
	"fmt"
	"time"

	"github.com/kilianp07/taxisim/core/model"
)

// FleetCar describes one car of the fleet reinstated on every reset.
type FleetCar struct {
	ID       int            `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	Location model.Location `json:"location" yaml:"location"`
}

// Config defines simulation settings.
type Config struct {
	// Fleet overrides the reference fleet when non-empty.
	Fleet []FleetCar `json:"fleet"`
	// TickIntervalMS advances the clock automatically when positive.
	TickIntervalMS int `json:"tick_interval_ms"`
	// EventBuffer is the per-subscriber event bus capacity.
	EventBuffer int `json:"event_buffer"`
}

// TickInterval returns the auto-tick period, zero when disabled.
func (c Config) TickInterval() time.Duration {
	if c.TickIntervalMS <= 0 {
		return 0
	}
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// FleetOrDefault returns the configured fleet or the reference one.
func (c Config) FleetOrDefault() []FleetCar {
	if len(c.Fleet) == 0 {
		return DefaultFleet()
	}
	return c.Fleet
}

// Validate checks the fleet definition.
func (c Config) Validate() error {
	if c.TickIntervalMS < 0 {
		return fmt.Errorf("tick_interval_ms must not be negative")
	}
	return ValidateFleet(c.Fleet)
}
