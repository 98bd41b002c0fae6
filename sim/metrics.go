// Tracks simulation-wide passenger and train statistics for final reporting.

package sim

import (
	"fmt"
	"sort"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	CompletedPassengers int     // Passengers who reached their destination
	SpawnedPassengers   int     // Passengers created at any station
	Steps               int     // Ticks executed
	SimEndedTime        float64 // Clock when Finish was called (seconds)

	TripTimes   RunningStats // Total trip time of every completed passenger
	WaitTimes   RunningStats // Board time - spawn time
	MaxTripTime float64

	Trains map[string]TrainStats // filled by Simulator.Finish
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{Trains: make(map[string]TrainStats)}
}

// RecordArrivals counts a batch of passengers who got off at now.
func (m *Metrics) RecordArrivals(off *PassengerList, now float64) {
	m.CompletedPassengers += off.Len()
	for _, p := range off.Items() {
		trip := p.TripTime(now)
		m.TripTimes.Update(trip)
		if trip > m.MaxTripTime {
			m.MaxTripTime = trip
		}
		if p.Boarded() {
			m.WaitTimes.Update(p.BoardTime - p.SpawnTime)
		}
	}
}

// RecordTrain stores one train's end-of-run counters.
func (m *Metrics) RecordTrain(name string, s TrainStats) {
	m.Trains[name] = s
}

// Throughput returns completed passengers per simulated second.
func (m *Metrics) Throughput() float64 {
	return float64(m.CompletedPassengers) / m.SimEndedTime
}

// SecondsPerPassenger returns simulated seconds per completed passenger.
func (m *Metrics) SecondsPerPassenger() float64 {
	return m.SimEndedTime / float64(m.CompletedPassengers)
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Simulated Time       : %.1f s (%d steps)\n", m.SimEndedTime, m.Steps)
	fmt.Printf("Spawned Passengers   : %d\n", m.SpawnedPassengers)
	fmt.Printf("Completed Passengers : %d\n", m.CompletedPassengers)
	if m.CompletedPassengers > 0 {
		fmt.Printf("Mean Trip Time       : %.2f s (stddev %.2f)\n", m.TripTimes.Mean(), m.TripTimes.StdDev())
		fmt.Printf("Max Trip Time        : %.2f s\n", m.MaxTripTime)
		fmt.Printf("Mean Platform Wait   : %.2f s\n", m.WaitTimes.Mean())
		fmt.Printf("Passengers/second    : %.4f\n", m.Throughput())
	}

	names := make([]string, 0, len(m.Trains))
	for name := range m.Trains {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := m.Trains[name]
		fmt.Printf("Train %-14s : %d departures, %d blocked ticks, %d held ticks\n",
			name, s.Departures, s.BlockedDepartures, s.HeldArrivals)
	}
}
