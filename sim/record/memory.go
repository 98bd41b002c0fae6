package record

// MemorySink collects records in memory, in arrival order.
type MemorySink struct {
	Trains     []string
	Trips      []TripRecord
	Departures []ManifestRecord
	Closed     bool
}

// NewMemorySink creates a MemorySink ready for recording.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		Trains:     make([]string, 0),
		Trips:      make([]TripRecord, 0),
		Departures: make([]ManifestRecord, 0),
	}
}

// RegisterTrain appends the train name.
func (m *MemorySink) RegisterTrain(name string) {
	m.Trains = append(m.Trains, name)
}

// RecordTrip appends a trip record.
func (m *MemorySink) RecordTrip(r TripRecord) {
	m.Trips = append(m.Trips, r)
}

// RecordDeparture appends a manifest record.
func (m *MemorySink) RecordDeparture(r ManifestRecord) {
	m.Departures = append(m.Departures, r)
}

// DeparturesFor returns the manifests written by one train, in order.
func (m *MemorySink) DeparturesFor(train string) []ManifestRecord {
	out := make([]ManifestRecord, 0)
	for _, d := range m.Departures {
		if d.Train == train {
			out = append(out, d)
		}
	}
	return out
}

// Close marks the sink closed. Always returns nil.
func (m *MemorySink) Close() error {
	m.Closed = true
	return nil
}
