package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subway-sim/subway-sim/sim/record"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
func int64Ptr(v int64) *int64       { return &v }

// newTestStation creates a station whose spawns are effectively never due.
func newTestStation(t *testing.T, name string) *Station {
	t.Helper()
	arrivals, err := NewArrivalProcess(1e12, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return NewStation(name, arrivals)
}

// newLoop builds a cycle over names in order, every leg taking travel seconds.
func newLoop(t *testing.T, travel float64, names ...string) (*Track, []*Station) {
	t.Helper()
	stations := make([]*Station, len(names))
	legs := make([]Leg, len(names))
	for i, n := range names {
		stations[i] = newTestStation(t, n)
		legs[i] = Leg{From: n, To: names[(i+1)%len(names)], TravelTime: travel}
	}
	track, err := NewTrack(stations, legs)
	require.NoError(t, err)
	return track, stations
}

// loopConfig returns a validated-ready config: a cycle over names, each leg
// taking travel seconds, every station spawning every spawn seconds on average.
func loopConfig(travel, spawn float64, names ...string) *Config {
	cfg := &Config{
		TimeStep:           float64Ptr(10),
		BoardTime:          float64Ptr(10),
		TrainWaitTime:      float64Ptr(60),
		TrainCapacity:      intPtr(5),
		PassengerSpawnSeed: int64Ptr(1),
		StationPickerSeed:  int64Ptr(2),
	}
	for i, n := range names {
		cfg.Stations = append(cfg.Stations, StationConfig{
			Name:          n,
			Destination:   names[(i+1)%len(names)],
			TravelTime:    float64Ptr(travel),
			SpawnInterval: float64Ptr(spawn),
		})
	}
	return cfg
}

// advanceUntil calls Advance every step seconds from `from` through `to`
// inclusive and returns the batches keyed by tick time.
func advanceUntil(tr *Train, track *Track, from, to, step float64) map[float64]*PassengerList {
	out := make(map[float64]*PassengerList)
	for now := from; now <= to; now += step {
		if off := tr.Advance(now, track); off != nil {
			out[now] = off
		}
	}
	return out
}

// newMemorySim builds a simulator writing to an in-memory sink.
func newMemorySim(t *testing.T, cfg *Config) (*Simulator, *record.MemorySink) {
	t.Helper()
	sink := record.NewMemorySink()
	s, err := NewSimulator(cfg, sink)
	require.NoError(t, err)
	return s, sink
}
