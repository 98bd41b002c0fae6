package sim

// PassengerList is an ordered, capacity-bounded set of passengers: a train's
// onboard load, or a batch of passengers that just got off.
// Add is the only way in, so len(Items()) <= Capacity() always holds.
type PassengerList struct {
	capacity   int
	passengers []*Passenger
}

// NewPassengerList creates an empty list that holds at most capacity passengers.
func NewPassengerList(capacity int) *PassengerList {
	if capacity < 0 {
		panic("NewPassengerList: capacity must not be negative")
	}
	return &PassengerList{capacity: capacity, passengers: make([]*Passenger, 0, capacity)}
}

// Add appends p if there is room and reports whether it did.
func (l *PassengerList) Add(p *Passenger) bool {
	if len(l.passengers) >= l.capacity {
		return false
	}
	l.passengers = append(l.passengers, p)
	return true
}

// ExtractForStation removes every passenger headed to station, keeping the
// relative order of both the removed and the remaining passengers.
// The removed passengers are returned in a list sized to fit them exactly.
func (l *PassengerList) ExtractForStation(station *Station) *PassengerList {
	n := 0
	for _, p := range l.passengers {
		if p.Destination == station {
			n++
		}
	}
	removed := NewPassengerList(n)
	kept := l.passengers[:0]
	for _, p := range l.passengers {
		if p.Destination == station {
			removed.passengers = append(removed.passengers, p)
		} else {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(l.passengers); i++ {
		l.passengers[i] = nil
	}
	l.passengers = kept
	return removed
}

// Len returns the number of passengers in the list.
func (l *PassengerList) Len() int {
	return len(l.passengers)
}

// Capacity returns the maximum number of passengers the list can hold.
func (l *PassengerList) Capacity() int {
	return l.capacity
}

// Full reports whether Add would refuse.
func (l *PassengerList) Full() bool {
	return len(l.passengers) >= l.capacity
}

// At returns the i-th passenger in boarding order.
func (l *PassengerList) At(i int) *Passenger {
	return l.passengers[i]
}

// Items returns the list contents for iteration.
// Callers MUST NOT append to or reslice the returned slice.
func (l *PassengerList) Items() []*Passenger {
	return l.passengers
}
