// Defines the Passenger struct that models one rider from spawn to disembark.

package sim

import "fmt"

// NotBoarded is the BoardTime of a passenger whose boarding has not completed.
const NotBoarded = -1.0

// Passenger is created when a station spawns it and is dropped by the engine
// once its trip has been recorded. BoardTime is the only mutable field.
type Passenger struct {
	SpawnTime   float64  // Global time (seconds) the passenger started waiting
	Origin      *Station // Station where the passenger spawned
	Destination *Station // Station where the passenger wants to get off
	BoardTime   float64  // Global time boarding completed; NotBoarded until then
}

// NewPassenger creates a passenger waiting at origin.
func NewPassenger(spawnTime float64, origin, destination *Station) *Passenger {
	return &Passenger{
		SpawnTime:   spawnTime,
		Origin:      origin,
		Destination: destination,
		BoardTime:   NotBoarded,
	}
}

// Boarded reports whether the passenger's board time has been recorded.
func (p *Passenger) Boarded() bool {
	return p.BoardTime != NotBoarded
}

// markBoarded records the board time. It only ever takes effect once.
func (p *Passenger) markBoarded(now float64) {
	if p.Boarded() {
		return
	}
	p.BoardTime = now
}

// TripTime returns the total trip duration for a passenger leaving at now.
func (p *Passenger) TripTime(now float64) float64 {
	return now - p.SpawnTime
}

func (p *Passenger) String() string {
	return fmt.Sprintf("Passenger: (Spawn: %v, Board: %v, Destination: %s)", p.SpawnTime, p.BoardTime, p.Destination.Name())
}
