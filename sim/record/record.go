// Package record defines the durable output shapes of a subway simulation
// run and the sinks that persist them.
// It has no dependencies on sim/, so any tool can read or write these types.
package record

import (
	"strconv"
	"strings"
)

// TripHeader is the column header of the passenger trip file.
var TripHeader = []string{"Total Trip Time", "Spawn Time", "Board Time", "Spawn Station", "Destination Station"}

// ManifestHeader is the column header of each train manifest file.
var ManifestHeader = []string{"Passengers", "Departing Station", "Destination Station", "Global Time"}

// TripRecord captures one passenger's completed trip, written when the
// passenger disembarks.
type TripRecord struct {
	TotalTripTime      float64 // disembark time - spawn time (seconds)
	SpawnTime          float64
	BoardTime          float64 // -1 if the passenger never had a board time recorded
	SpawnStation       string
	DestinationStation string
}

// Fields renders the record in TripHeader column order.
func (r TripRecord) Fields() []string {
	return []string{
		FormatSeconds(r.TotalTripTime),
		FormatSeconds(r.SpawnTime),
		FormatSeconds(r.BoardTime),
		r.SpawnStation,
		r.DestinationStation,
	}
}

// ManifestRecord captures a train's load at the moment it leaves a station.
type ManifestRecord struct {
	Train              string // not a column; selects the per-train file
	Passengers         int
	DepartingStation   string
	DestinationStation string
	GlobalTime         float64
}

// Fields renders the record in ManifestHeader column order.
func (r ManifestRecord) Fields() []string {
	return []string{
		strconv.Itoa(r.Passengers),
		r.DepartingStation,
		r.DestinationStation,
		FormatSeconds(r.GlobalTime),
	}
}

// FormatSeconds renders a time value the way downstream analysis scripts
// expect it: shortest decimal form, always with a fractional part
// (220 -> "220.0", -1 -> "-1.0", 12.5 -> "12.5").
func FormatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Sink receives records as the simulation produces them.
// Sinks never fail the tick loop: write errors are latched and reported by Close.
type Sink interface {
	// RegisterTrain announces a train before any of its manifests arrive.
	RegisterTrain(name string)
	RecordTrip(r TripRecord)
	RecordDeparture(r ManifestRecord)
	Close() error
}
