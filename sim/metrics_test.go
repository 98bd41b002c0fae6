package sim

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunningStats_MeanAndStdDev(t *testing.T) {
	var r RunningStats
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		r.Update(v)
	}

	assert.Equal(t, 8, r.Count())
	assert.InDelta(t, 5.0, r.Mean(), 1e-12)
	assert.InDelta(t, 2.0, r.StdDev(), 1e-12)
}

func TestRunningStats_FewObservations(t *testing.T) {
	var r RunningStats
	assert.Equal(t, 0.0, r.Mean())
	assert.Equal(t, 0.0, r.StdDev())

	r.Update(3)
	assert.Equal(t, 3.0, r.Mean())
	assert.Equal(t, 0.0, r.StdDev())
}

func TestMetrics_RecordArrivals(t *testing.T) {
	// GIVEN two passengers getting off at t=300
	a, b := newTestStation(t, "A"), newTestStation(t, "B")
	off := NewPassengerList(2)
	p1 := NewPassenger(100, a, b)
	p1.markBoarded(150)
	p2 := NewPassenger(200, a, b)
	p2.markBoarded(210)
	off.Add(p1)
	off.Add(p2)
	m := NewMetrics()

	// WHEN recorded
	m.RecordArrivals(off, 300)

	// THEN counts, trip times and platform waits are aggregated
	assert.Equal(t, 2, m.CompletedPassengers)
	assert.Equal(t, 150.0, m.TripTimes.Mean())
	assert.Equal(t, 200.0, m.MaxTripTime)
	assert.Equal(t, 30.0, m.WaitTimes.Mean())
}

func TestMetrics_ThroughputAndSecondsPerPassenger(t *testing.T) {
	m := NewMetrics()
	m.CompletedPassengers = 50
	m.SimEndedTime = 200

	assert.Equal(t, 0.25, m.Throughput())
	assert.Equal(t, 4.0, m.SecondsPerPassenger())

	m.CompletedPassengers = 0
	assert.True(t, math.IsInf(m.SecondsPerPassenger(), 1))
}

func TestWriteRunLog(t *testing.T) {
	// GIVEN a finished run
	cfg := loopConfig(60, 30, "A", "B")
	m := NewMetrics()
	m.CompletedPassengers = 40
	m.SimEndedTime = 1000
	path := filepath.Join(t.TempDir(), "net_log.txt")

	// WHEN the run log is written
	require.NoError(t, WriteRunLog(path, cfg, m))

	// THEN it holds the configuration followed by the totals
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(data)
	assert.True(t, strings.HasPrefix(got, "time_step: 10\n"), got)
	assert.Contains(t, got, "- name: A\n")
	assert.True(t, strings.HasSuffix(got,
		"Total passengers: 40\n"+
			"Total time (seconds): 1000\n"+
			"Passengers/second: 0.04\n"+
			"Seconds/Passenger: 25\n"), got)
}

func TestWriteRunLog_UnwritablePath(t *testing.T) {
	err := WriteRunLog(filepath.Join(t.TempDir(), "missing", "log.txt"), loopConfig(1, 1, "A", "B"), NewMetrics())

	assert.Error(t, err)
}
