package sim

import "fmt"

// Destination is an edge of the track: the next station and how long it
// takes to get there. Immutable once constructed.
type Destination struct {
	station    *Station
	travelTime float64
}

// Station returns the station at the end of the edge.
func (d Destination) Station() *Station {
	return d.station
}

// TravelTime returns the travel time in seconds.
func (d Destination) TravelTime() float64 {
	return d.travelTime
}

func (d Destination) String() string {
	return fmt.Sprintf("{%s, %vsecs}", d.station.Name(), d.travelTime)
}

// Leg is one configured edge: from -> to, taking travelTime seconds.
type Leg struct {
	From       string
	To         string
	TravelTime float64
}

// Track maps every station to exactly one Destination. The edges form a
// single directed cycle over all stations. Read-only after NewTrack.
type Track struct {
	stations []*Station // configuration order
	byName   map[string]*Station
	next     map[*Station]Destination
}

// NewTrack builds the track from stations and one leg per station.
// Fails if a station lacks a leg, a leg names an unknown station, a travel
// time is not positive, or the legs do not form one cycle through every station.
func NewTrack(stations []*Station, legs []Leg) (*Track, error) {
	t := &Track{
		stations: stations,
		byName:   make(map[string]*Station, len(stations)),
		next:     make(map[*Station]Destination, len(stations)),
	}
	for _, s := range stations {
		if _, dup := t.byName[s.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate station %q", ErrInvalidConfig, s.Name())
		}
		t.byName[s.Name()] = s
	}

	for _, leg := range legs {
		from, ok := t.byName[leg.From]
		if !ok {
			return nil, fmt.Errorf("%w: leg starts at %q", ErrUnknownStation, leg.From)
		}
		if leg.To == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingDestination, leg.From)
		}
		to, ok := t.byName[leg.To]
		if !ok {
			return nil, fmt.Errorf("%w: destination %q of station %q", ErrUnknownStation, leg.To, leg.From)
		}
		if !(leg.TravelTime > 0) {
			return nil, fmt.Errorf("%w: %q -> %q has %v", ErrInvalidTravelTime, leg.From, leg.To, leg.TravelTime)
		}
		if _, dup := t.next[from]; dup {
			return nil, fmt.Errorf("%w: station %q has more than one destination", ErrInvalidConfig, leg.From)
		}
		t.next[from] = Destination{station: to, travelTime: leg.TravelTime}
	}

	for _, s := range stations {
		if _, ok := t.next[s]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingDestination, s.Name())
		}
	}
	if err := t.checkCycle(); err != nil {
		return nil, err
	}
	return t, nil
}

// checkCycle walks the track from the first station and requires it to come
// back to the start after visiting every station exactly once.
func (t *Track) checkCycle() error {
	if len(t.stations) == 0 {
		return fmt.Errorf("%w: no stations", ErrNotACycle)
	}
	start := t.stations[0]
	seen := make(map[*Station]bool, len(t.stations))
	cur := start
	for i := 0; i < len(t.stations); i++ {
		if seen[cur] {
			return fmt.Errorf("%w: %q is revisited before every station is reached", ErrNotACycle, cur.Name())
		}
		seen[cur] = true
		cur = t.next[cur].station
	}
	if cur != start {
		return fmt.Errorf("%w: walk from %q does not return to it", ErrNotACycle, start.Name())
	}
	return nil
}

// DestinationOf returns the outgoing edge of s.
// Panics if s is not on the track; NewTrack guarantees every station is.
func (t *Track) DestinationOf(s *Station) Destination {
	d, ok := t.next[s]
	if !ok {
		panic(fmt.Sprintf("DestinationOf: station %v is not on the track", s))
	}
	return d
}

// Station looks a station up by name.
func (t *Track) Station(name string) (*Station, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Stations returns the stations in configuration order.
// Callers MUST NOT modify the returned slice.
func (t *Track) Stations() []*Station {
	return t.stations
}

func (t *Track) String() string {
	out := "{"
	for i, s := range t.stations {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%v=%v", s, t.next[s])
	}
	return out + "}"
}
