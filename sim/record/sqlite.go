package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	started_utc TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS trains (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	name   TEXT NOT NULL,
	PRIMARY KEY (run_id, name)
);
CREATE TABLE IF NOT EXISTS trips (
	run_id              TEXT NOT NULL REFERENCES runs(run_id),
	total_trip_time     REAL NOT NULL,
	spawn_time          REAL NOT NULL,
	board_time          REAL NOT NULL,
	spawn_station       TEXT NOT NULL,
	destination_station TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS departures (
	run_id              TEXT NOT NULL REFERENCES runs(run_id),
	train               TEXT NOT NULL,
	passengers          INTEGER NOT NULL,
	departing_station   TEXT NOT NULL,
	destination_station TEXT NOT NULL,
	global_time         REAL NOT NULL
);
`

// SQLiteSink stores every record of one run in a SQLite database, tagged with
// a generated run ID so several runs can share a file. All rows of a run are
// written inside one transaction that commits on Close.
type SQLiteSink struct {
	ctx   context.Context
	conn  *sql.DB
	tx    *sql.Tx
	runID string

	insertTrip      *sql.Stmt
	insertDeparture *sql.Stmt
	err             error
}

// NewSQLiteSink opens (or creates) the database at path, ensures the schema
// and registers a new run called name.
func NewSQLiteSink(ctx context.Context, path, name string) (*SQLiteSink, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &SQLiteSink{ctx: ctx, conn: conn, runID: uuid.New().String()}
	if err := s.begin(name); err != nil {
		conn.Close()
		return nil, err
	}
	logrus.Infof("Writing run %s to SQLite database: %s", s.runID, path)
	return s, nil
}

func (s *SQLiteSink) begin(name string) error {
	tx, err := s.conn.BeginTx(s.ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	started := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(s.ctx,
		"INSERT INTO runs (run_id, name, started_utc) VALUES (?, ?, ?)",
		s.runID, name, started,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create run: %w", err)
	}
	s.insertTrip, err = tx.PrepareContext(s.ctx, `
		INSERT INTO trips (run_id, total_trip_time, spawn_time, board_time, spawn_station, destination_station)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare trip insert: %w", err)
	}
	s.insertDeparture, err = tx.PrepareContext(s.ctx, `
		INSERT INTO departures (run_id, train, passengers, departing_station, destination_station, global_time)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare departure insert: %w", err)
	}
	s.tx = tx
	return nil
}

// RunID returns the generated identifier of this run.
func (s *SQLiteSink) RunID() string {
	return s.runID
}

// RegisterTrain inserts the train row for this run.
func (s *SQLiteSink) RegisterTrain(name string) {
	_, err := s.tx.ExecContext(s.ctx,
		"INSERT OR IGNORE INTO trains (run_id, name) VALUES (?, ?)", s.runID, name)
	s.latch(err)
}

// RecordTrip inserts one trip row.
func (s *SQLiteSink) RecordTrip(r TripRecord) {
	_, err := s.insertTrip.ExecContext(s.ctx, s.runID,
		r.TotalTripTime, r.SpawnTime, r.BoardTime, r.SpawnStation, r.DestinationStation)
	s.latch(err)
}

// RecordDeparture inserts one departure row.
func (s *SQLiteSink) RecordDeparture(r ManifestRecord) {
	_, err := s.insertDeparture.ExecContext(s.ctx, s.runID,
		r.Train, r.Passengers, r.DepartingStation, r.DestinationStation, r.GlobalTime)
	s.latch(err)
}

func (s *SQLiteSink) latch(err error) {
	if err != nil && s.err == nil {
		logrus.Warnf("sqlite sink: %v", err)
		s.err = err
	}
}

// Close commits the run, unless a write failed, in which case the run is
// rolled back and the first error returned.
func (s *SQLiteSink) Close() error {
	var txErr error
	if s.err != nil {
		txErr = s.tx.Rollback()
	} else {
		txErr = s.tx.Commit()
	}
	return errors.Join(s.err, txErr, s.conn.Close())
}
