// sim/simulator.go
package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/subway-sim/subway-sim/sim/record"
)

// Simulator is the core object that holds simulation time, the network and
// the fixed-step update loop. It is the single writer of all of its state.
type Simulator struct {
	Clock     float64 // current global time (seconds)
	TimeStep  float64 // dt
	StepCount int
	Track     *Track
	// Trains are advanced in this order every tick; when two trains want the
	// same station in one tick, the earlier one wins.
	Trains  []*Train
	Metrics *Metrics

	destRNG *rand.Rand // picks passenger destinations
	sink    record.Sink
}

// NewSimulator validates cfg, builds the stations, track and trains, and
// schedules each station's first spawn. Every configuration problem is
// reported here, before any tick runs. Records are written to sink.
func NewSimulator(cfg *Config, sink record.Sink) (*Simulator, error) {
	if sink == nil {
		panic("NewSimulator: sink must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spawnRNG := NewPartitionedRNG(NewSimulationKey(*cfg.PassengerSpawnSeed))
	pickerRNG := NewPartitionedRNG(NewSimulationKey(*cfg.StationPickerSeed))

	stations := make([]*Station, 0, len(cfg.Stations))
	for _, sc := range cfg.Stations {
		arrivals, err := NewArrivalProcess(*sc.SpawnInterval, spawnRNG.ForSubsystem(SubsystemStation(sc.Name)))
		if err != nil {
			return nil, fmt.Errorf("station %q: %w", sc.Name, err)
		}
		stations = append(stations, NewStation(sc.Name, arrivals))
	}

	track, err := NewTrack(stations, cfg.Legs())
	if err != nil {
		return nil, fmt.Errorf("building track: %w", err)
	}

	s := &Simulator{
		Clock:    0,
		TimeStep: *cfg.TimeStep,
		Track:    track,
		Trains:   make([]*Train, 0, len(cfg.Trains)),
		Metrics:  NewMetrics(),
		destRNG:  pickerRNG.ForSubsystem(SubsystemDestination),
		sink:     sink,
	}

	for _, tc := range cfg.Trains {
		start, ok := track.Station(tc.Start)
		if !ok {
			return nil, fmt.Errorf("train %q: %w: %q", tc.Name, ErrUnknownStation, tc.Start)
		}
		if start.IsOccupied() {
			return nil, fmt.Errorf("train %q: %w: %q", tc.Name, ErrDuplicateStartStation, tc.Start)
		}
		s.Trains = append(s.Trains, NewTrain(tc.Name, *cfg.TrainCapacity, start, track, *cfg.BoardTime, *cfg.TrainWaitTime, sink))
	}
	if len(s.Trains) == 0 {
		logrus.Warnf("No trains configured; passengers will only accumulate")
	} else if len(s.Trains) == len(stations) {
		logrus.Warnf("Every station starts occupied (%d trains, %d stations); no train will ever depart", len(s.Trains), len(stations))
	}

	logrus.Debugf("the track looks like: %v", track)
	logrus.Debugf("the trains look like: %v", s.Trains)

	for _, st := range stations {
		st.ScheduleNextArrival(s.Clock)
		logrus.Debugf("%v has first arrival time at: %v seconds", st, st.NextArrival())
	}
	return s, nil
}

// Step advances the clock by one time step, spawns every passenger due
// before the new time, then advances each train in order.
func (sim *Simulator) Step() {
	sim.Clock += sim.TimeStep
	sim.StepCount++

	for _, st := range sim.Track.Stations() {
		// A coarse step can owe a station several spawns.
		for tnext := st.NextArrival(); tnext < sim.Clock; tnext = st.ScheduleNextArrival(tnext) {
			dest := sim.drawDestination(st)
			st.Enqueue(tnext, dest)
			sim.Metrics.SpawnedPassengers++
			logrus.Debugf("[t=%v] spawned a passenger at %s for %s", sim.Clock, st.Name(), dest.Name())
		}
	}

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		for _, st := range sim.Track.Stations() {
			logrus.Tracef("\tStation %v: occupied=%v; has %d people: %v", st, st.IsOccupied(), st.Waiting(), &st.queue)
		}
	}

	for _, tr := range sim.Trains {
		if off := tr.Advance(sim.Clock, sim.Track); off != nil {
			sim.Metrics.RecordArrivals(off, sim.Clock)
		}
	}
}

// drawDestination picks a station uniformly at random, redrawing until it
// differs from origin.
func (sim *Simulator) drawDestination(origin *Station) *Station {
	stations := sim.Track.Stations()
	for {
		dest := stations[sim.destRNG.Intn(len(stations))]
		if dest != origin {
			return dest
		}
	}
}

// CompletedPassengers returns how many passengers have finished their trips.
func (sim *Simulator) CompletedPassengers() int {
	return sim.Metrics.CompletedPassengers
}

// Finish stamps the end time and gathers per-train counters into Metrics.
func (sim *Simulator) Finish() {
	sim.Metrics.SimEndedTime = sim.Clock
	sim.Metrics.Steps = sim.StepCount
	for _, tr := range sim.Trains {
		sim.Metrics.RecordTrain(tr.Name(), tr.Stats())
	}
	logrus.Infof("[t=%v] Simulation ended after %d steps", sim.Clock, sim.StepCount)
}
