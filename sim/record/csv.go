package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	// PassengerSuffix is appended to the run's base name for the trip file.
	PassengerSuffix = "_passenger.csv"
	// TrainSuffix is appended to "<base>_<train>" for each manifest file.
	TrainSuffix = "_train.csv"
)

// csvFile pairs an open file with its csv writer.
type csvFile struct {
	f *os.File
	w *csv.Writer
}

func createCSV(path string, header []string) (*csvFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}
	return &csvFile{f: f, w: w}, nil
}

func (c *csvFile) close() error {
	c.w.Flush()
	return errors.Join(c.w.Error(), c.f.Close())
}

// CSVSink writes trips to "<outDir>/<name>_passenger.csv" and each train's
// departures to "<outDir>/<name>_<train>_train.csv".
type CSVSink struct {
	base       string
	passengers *csvFile
	trains     map[string]*csvFile
	err        error // first write error, reported by Close
}

// NewCSVSink creates outDir if needed and opens the passenger trip file with
// its header already written.
func NewCSVSink(outDir, name string) (*CSVSink, error) {
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		logrus.Infof("Creating %s directory for output.", outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	base := filepath.Join(outDir, name)
	passengers, err := createCSV(base+PassengerSuffix, TripHeader)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Writing passenger data to: %s", base+PassengerSuffix)
	return &CSVSink{
		base:       base,
		passengers: passengers,
		trains:     make(map[string]*csvFile),
	}, nil
}

// PassengerPath returns the path of the trip file.
func (s *CSVSink) PassengerPath() string {
	return s.base + PassengerSuffix
}

// TrainPath returns the path of the manifest file for train.
func (s *CSVSink) TrainPath(train string) string {
	return s.base + "_" + train + TrainSuffix
}

// RegisterTrain opens the train's manifest file and writes its header.
// Registering the same train twice is a no-op.
func (s *CSVSink) RegisterTrain(name string) {
	if _, ok := s.trains[name]; ok {
		return
	}
	f, err := createCSV(s.TrainPath(name), ManifestHeader)
	if err != nil {
		s.latch(err)
		return
	}
	s.trains[name] = f
}

// RecordTrip appends one row to the trip file.
func (s *CSVSink) RecordTrip(r TripRecord) {
	s.latch(s.passengers.w.Write(r.Fields()))
}

// RecordDeparture appends one row to the departing train's manifest file.
func (s *CSVSink) RecordDeparture(r ManifestRecord) {
	f, ok := s.trains[r.Train]
	if !ok {
		s.latch(fmt.Errorf("departure for unregistered train %q", r.Train))
		return
	}
	s.latch(f.w.Write(r.Fields()))
}

func (s *CSVSink) latch(err error) {
	if err != nil && s.err == nil {
		logrus.Warnf("csv sink: %v", err)
		s.err = err
	}
}

// Close flushes and closes every file. It returns the first latched write
// error joined with any close errors.
func (s *CSVSink) Close() error {
	errs := []error{s.err, s.passengers.close()}
	for _, f := range s.trains {
		errs = append(errs, f.close())
	}
	return errors.Join(errs...)
}
