package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/subway-sim/subway-sim/sim/record"
)

// TrainState names the phase a train is in.
type TrainState string

const (
	StateTravelling   TrainState = "travelling"
	StateDisembarking TrainState = "disembarking"
	StateBoarding     TrainState = "boarding"
)

// trainState is the per-phase data of a train. Exactly one of *travelling,
// *disembarking or *boarding; Advance switches on the concrete type.
type trainState interface {
	kind() TrainState
}

// travelling: between lastVisited and destination.
type travelling struct {
	tripStart float64
}

// disembarking: at lastVisited, letting passengers off.
type disembarking struct {
	start    float64
	duration float64 // passengers off * board unit time
}

// boarding: at lastVisited, taking passengers on until the wait runs out.
type boarding struct {
	waitingStart float64
	inProgress   int // boarded passengers whose board time is not yet stamped
}

func (*travelling) kind() TrainState   { return StateTravelling }
func (*disembarking) kind() TrainState { return StateDisembarking }
func (*boarding) kind() TrainState     { return StateBoarding }

// TrainStats counts what a train did over a run.
type TrainStats struct {
	Departures        int // successful departures
	BlockedDepartures int // ticks a ready train spent waiting for its destination to clear
	HeldArrivals      int // ticks an arrived train spent outside an occupied station
}

// Train runs around the track, one Advance call per tick.
type Train struct {
	name        string
	passengers  *PassengerList
	lastVisited *Station
	destination Destination
	boardTime   float64 // seconds per passenger getting on or off
	maxWaitTime float64 // how long the doors stay open for boarding
	state       trainState
	sink        record.Sink
	stats       TrainStats
}

// NewTrain places a train at start, occupying it, in the Boarding phase with
// its wait starting at time 0. The train announces itself to sink.
func NewTrain(name string, capacity int, start *Station, track *Track, boardTime, maxWaitTime float64, sink record.Sink) *Train {
	if start == nil || track == nil || sink == nil {
		panic("NewTrain: start, track and sink must not be nil")
	}
	t := &Train{
		name:        name,
		passengers:  NewPassengerList(capacity),
		lastVisited: start,
		destination: track.DestinationOf(start),
		boardTime:   boardTime,
		maxWaitTime: maxWaitTime,
		state:       &boarding{waitingStart: 0},
		sink:        sink,
	}
	start.SetOccupied(true)
	sink.RegisterTrain(name)
	return t
}

// Advance runs one tick of the train's state machine at global time now.
// It returns the passengers who got off if the train arrived at a station
// this tick, and nil otherwise.
func (t *Train) Advance(now float64, track *Track) *PassengerList {
	switch s := t.state.(type) {
	case *travelling:
		return t.travel(now, track, s)
	case *disembarking:
		t.disembark(now, s)
	case *boarding:
		t.board(now, s)
	default:
		panic(fmt.Sprintf("Advance: train %s in unknown state %T", t.name, t.state))
	}
	return nil
}

func (t *Train) travel(now float64, track *Track, s *travelling) *PassengerList {
	if now-s.tripStart < t.destination.TravelTime() {
		return nil
	}
	arrivedAt := t.destination.Station()
	if arrivedAt.IsOccupied() {
		// A slower train is still at the platform; wait outside it.
		t.stats.HeldArrivals++
		logrus.Debugf("[t=%v] %s held outside occupied %s", now, t.name, arrivedAt.Name())
		return nil
	}
	logrus.Debugf("[t=%v] %s arrived at %s", now, t.name, arrivedAt.Name())
	arrivedAt.SetOccupied(true)

	t.lastVisited = arrivedAt
	t.destination = track.DestinationOf(arrivedAt)
	before := t.passengers.Len()
	off := t.passengers.ExtractForStation(arrivedAt)
	t.state = &disembarking{
		start:    now,
		duration: float64(off.Len()) * t.boardTime,
	}
	logrus.Debugf("\t%s disembarking %d/%d passengers over %vs", t.name, off.Len(), before, float64(off.Len())*t.boardTime)

	for _, p := range off.Items() {
		t.sink.RecordTrip(record.TripRecord{
			TotalTripTime:      p.TripTime(now),
			SpawnTime:          p.SpawnTime,
			BoardTime:          p.BoardTime,
			SpawnStation:       p.Origin.Name(),
			DestinationStation: p.Destination.Name(),
		})
	}
	return off
}

func (t *Train) disembark(now float64, s *disembarking) {
	if now-s.start < s.duration {
		return
	}
	logrus.Debugf("[t=%v] %s finished disembarking at %s, boarding", now, t.name, t.lastVisited.Name())
	t.state = &boarding{waitingStart: now, inProgress: 0}
}

func (t *Train) board(now float64, s *boarding) {
	// At most one passenger finishes boarding per tick.
	if s.inProgress > 0 {
		t.passengers.At(t.passengers.Len() - s.inProgress).markBoarded(now)
		s.inProgress--
	}

	waited := now - s.waitingStart
	boardTimeLeft := t.maxWaitTime - waited
	boardable := boardTimeLeft/t.boardTime - float64(s.inProgress)

	if boardable >= 1 {
		limit := math.Floor(boardable)
		for n := 0.0; n < limit; n++ {
			// Peek before popping so a full train leaves the passenger on the platform.
			if t.lastVisited.Peek() == nil || t.passengers.Full() {
				break
			}
			t.passengers.Add(t.lastVisited.Dequeue())
			s.inProgress++
		}
	}

	if waited >= t.maxWaitTime && s.inProgress == 0 {
		t.leaveIfPossible(now)
	}
}

// leaveIfPossible departs if the next station is free; otherwise the train
// stays in Boarding and tries again next tick.
func (t *Train) leaveIfPossible(now float64) {
	next := t.destination.Station()
	if next.IsOccupied() {
		t.stats.BlockedDepartures++
		logrus.Debugf("[t=%v] %s can't leave %s: %s is occupied", now, t.name, t.lastVisited.Name(), next.Name())
		return
	}
	logrus.Debugf("[t=%v] %s left %s with %d passengers", now, t.name, t.lastVisited.Name(), t.passengers.Len())
	t.lastVisited.SetOccupied(false)
	t.state = &travelling{tripStart: now}
	t.stats.Departures++

	t.sink.RecordDeparture(record.ManifestRecord{
		Train:              t.name,
		Passengers:         t.passengers.Len(),
		DepartingStation:   t.lastVisited.Name(),
		DestinationStation: next.Name(),
		GlobalTime:         now,
	})
}

// Name returns the train's unique name.
func (t *Train) Name() string {
	return t.name
}

// State returns the current phase.
func (t *Train) State() TrainState {
	return t.state.kind()
}

// LastVisited returns the station the train is at, or last left.
func (t *Train) LastVisited() *Station {
	return t.lastVisited
}

// CurrentDestination returns the edge the train will take (or is taking) next.
func (t *Train) CurrentDestination() Destination {
	return t.destination
}

// Passengers returns the onboard load. Callers MUST NOT modify it.
func (t *Train) Passengers() *PassengerList {
	return t.passengers
}

// Stats returns the train's counters so far.
func (t *Train) Stats() TrainStats {
	return t.stats
}

func (t *Train) String() string {
	return fmt.Sprintf("|%s, %v, %v|", t.name, t.lastVisited, t.destination)
}
