// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - BookingCreated: a car was dispatched to a pickup point
//   - BookingRejected: no car was available for a request
//   - CarMoved: a booked car advanced one step along its path
//   - TripCompleted: a car reached the destination of its booking
//   - TimeAdvanced: the simulation clock ticked
//   - SimulationReset: the fleet was reinstated and bookings cleared
package events
