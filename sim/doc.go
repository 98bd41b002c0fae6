// Package sim provides the fixed-step simulation engine for a closed-loop
// subway line.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - station.go: platforms, their FIFO queues and Poisson passenger spawns
//   - train.go: the Travelling → Disembarking → Boarding state machine
//   - simulator.go: the tick loop that spawns passengers and advances trains
//
// # Architecture
//
// The track (track.go) is a single directed cycle: every station has exactly
// one next station and a travel time to it. A station's occupancy flag is the
// only coordination between trains: a train leaves only when its next station
// is free, so queues of trains form behind a slow one.
//
// Output goes through the record.Sink interface (sim/record), which receives
// one TripRecord per passenger who gets off and one ManifestRecord per
// departure. CSV, SQLite and in-memory sinks are provided there.
//
// # Determinism
//
// Given non-negative seeds, a run is fully reproducible: every station draws
// spawn gaps from its own RNG partition (rng.go), and a separate RNG picks
// passenger destinations. Stations and trains are processed in configuration
// order.
package sim
