package record

import "errors"

type teeSink struct {
	sinks []Sink
}

// Tee returns a Sink that forwards every record to each of sinks in order.
// Nil entries are skipped. Close closes all sinks and joins their errors.
func Tee(sinks ...Sink) Sink {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &teeSink{sinks: kept}
}

func (t *teeSink) RegisterTrain(name string) {
	for _, s := range t.sinks {
		s.RegisterTrain(name)
	}
}

func (t *teeSink) RecordTrip(r TripRecord) {
	for _, s := range t.sinks {
		s.RecordTrip(r)
	}
}

func (t *teeSink) RecordDeparture(r ManifestRecord) {
	for _, s := range t.sinks {
		s.RecordDeparture(r)
	}
}

func (t *teeSink) Close() error {
	var errs []error
	for _, s := range t.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
