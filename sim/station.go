package sim

import "fmt"

// Station is a platform on the loop. It owns its waiting queue and its own
// arrival process; its occupancy flag is written only by trains (and once at
// setup when a train is placed on it).
type Station struct {
	name     string
	arrivals *ArrivalProcess
	occupied bool
	queue    StationQueue
	tnext    float64 // time of the next scheduled spawn
}

// NewStation creates a station whose passengers spawn every meanSpawnInterval
// seconds on average.
func NewStation(name string, arrivals *ArrivalProcess) *Station {
	if arrivals == nil {
		panic("NewStation: arrivals must not be nil")
	}
	return &Station{name: name, arrivals: arrivals}
}

// Name returns the station's unique name.
func (s *Station) Name() string {
	return s.name
}

// MeanSpawnInterval returns the mean time between passenger spawns.
func (s *Station) MeanSpawnInterval() float64 {
	return s.arrivals.Mean()
}

// ScheduleNextArrival draws a gap from the arrival process and stores
// now + gap as the next spawn time, which it also returns.
func (s *Station) ScheduleNextArrival(now float64) float64 {
	s.tnext = now + s.arrivals.NextGap()
	return s.tnext
}

// NextArrival returns the pending spawn time.
func (s *Station) NextArrival() float64 {
	return s.tnext
}

// Enqueue adds a passenger who spawned here at spawnTime, headed to dest.
func (s *Station) Enqueue(spawnTime float64, dest *Station) *Passenger {
	p := NewPassenger(spawnTime, s, dest)
	s.queue.Enqueue(p)
	return p
}

// Dequeue pops the longest-waiting passenger, or nil.
func (s *Station) Dequeue() *Passenger {
	return s.queue.Dequeue()
}

// Peek returns the longest-waiting passenger without removing it, or nil.
func (s *Station) Peek() *Passenger {
	return s.queue.Peek()
}

// Waiting returns the number of passengers on the platform.
func (s *Station) Waiting() int {
	return s.queue.Len()
}

// IsOccupied reports whether a train is at the station.
func (s *Station) IsOccupied() bool {
	return s.occupied
}

// SetOccupied sets the occupancy flag.
func (s *Station) SetOccupied(occupied bool) {
	s.occupied = occupied
}

func (s *Station) String() string {
	return fmt.Sprintf("[%s, %v]", s.name, s.arrivals.Mean())
}
