package record

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSink_PersistsRun(t *testing.T) {
	// GIVEN a fresh database
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewSQLiteSink(context.Background(), path, "loop")
	require.NoError(t, err)
	runID := s.RunID()
	require.NotEmpty(t, runID)

	// WHEN one departure and two trips are recorded
	s.RegisterTrain("T1")
	s.RecordDeparture(ManifestRecord{Train: "T1", Passengers: 2, DepartingStation: "A", DestinationStation: "B", GlobalTime: 120})
	s.RecordTrip(TripRecord{TotalTripTime: 220, SpawnTime: 0, BoardTime: 10, SpawnStation: "A", DestinationStation: "B"})
	s.RecordTrip(TripRecord{TotalTripTime: 200, SpawnTime: 20, BoardTime: 30, SpawnStation: "A", DestinationStation: "B"})
	require.NoError(t, s.Close())

	// THEN the rows are readable after commit
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	var trips int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM trips WHERE run_id = ?", runID).Scan(&trips))
	assert.Equal(t, 2, trips)

	var passengers int
	var departing string
	require.NoError(t, conn.QueryRow(
		"SELECT passengers, departing_station FROM departures WHERE run_id = ? AND train = ?", runID, "T1",
	).Scan(&passengers, &departing))
	assert.Equal(t, 2, passengers)
	assert.Equal(t, "A", departing)

	var name string
	require.NoError(t, conn.QueryRow("SELECT name FROM runs WHERE run_id = ?", runID).Scan(&name))
	assert.Equal(t, "loop", name)
}

func TestSQLiteSink_RunsShareFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	for i := 0; i < 2; i++ {
		s, err := NewSQLiteSink(context.Background(), path, "again")
		require.NoError(t, err)
		s.RecordTrip(TripRecord{SpawnStation: "A", DestinationStation: "B"})
		require.NoError(t, s.Close())
	}

	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	var runs int
	require.NoError(t, conn.QueryRow("SELECT COUNT(DISTINCT run_id) FROM trips").Scan(&runs))
	assert.Equal(t, 2, runs)
}
