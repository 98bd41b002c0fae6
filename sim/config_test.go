package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	// GIVEN a full network definition
	path := writeConfig(t, `
time_step: 5
board_time: 8
train_wait_time: 90
train_capacity: 100
passenger_spawn_seed: 3
station_picker_seed: 0
stations:
  - name: North
    destination: South
    travel_time: 240
    spawn_interval: 12.5
  - name: South
    destination: North
    travel_time: 200
    spawn_interval: 30
trains:
  - name: T1
    start: North
`)

	// WHEN loaded
	cfg, err := LoadConfig(path)

	// THEN every value is read as written
	require.NoError(t, err)
	assert.Equal(t, 5.0, *cfg.TimeStep)
	assert.Equal(t, 8.0, *cfg.BoardTime)
	assert.Equal(t, 90.0, *cfg.TrainWaitTime)
	assert.Equal(t, 100, *cfg.TrainCapacity)
	assert.Equal(t, int64(3), *cfg.PassengerSpawnSeed)
	assert.Equal(t, int64(0), *cfg.StationPickerSeed, "0 is a real seed, not unset")
	require.Len(t, cfg.Stations, 2)
	assert.Equal(t, "South", cfg.Stations[0].Destination)
	assert.Equal(t, 12.5, *cfg.Stations[0].SpawnInterval)
	assert.Equal(t, []TrainConfig{{Name: "T1", Start: "North"}}, cfg.Trains)
	assert.Equal(t, []Leg{{"North", "South", 240}, {"South", "North", 200}}, cfg.Legs())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
board_time: 4
stations:
  - {name: A, destination: B, travel_time: 10, spawn_interval: 1}
  - {name: B, destination: A, travel_time: 10, spawn_interval: 1}
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 4.0, *cfg.TimeStep, "time_step follows board_time")
	assert.Equal(t, DefaultTrainWaitTime, *cfg.TrainWaitTime)
	assert.Equal(t, DefaultTrainCapacity, *cfg.TrainCapacity)
	assert.Equal(t, DefaultSeed, *cfg.PassengerSpawnSeed)
	assert.Equal(t, DefaultSeed, *cfg.StationPickerSeed)
	assert.Empty(t, cfg.Trains)
}

func TestLoadConfig_UnknownKey_Rejected(t *testing.T) {
	path := writeConfig(t, `
board_time: 4
board_tiem: 5
`)

	_, err := LoadConfig(path)

	assert.ErrorContains(t, err, "board_tiem")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero time step", func(c *Config) { c.TimeStep = float64Ptr(0) }, ErrInvalidConfig},
		{"negative board time", func(c *Config) { c.BoardTime = float64Ptr(-1) }, ErrInvalidConfig},
		{"negative wait", func(c *Config) { c.TrainWaitTime = float64Ptr(-1) }, ErrInvalidConfig},
		{"zero capacity", func(c *Config) { c.TrainCapacity = intPtr(0) }, ErrInvalidConfig},
		{"unset global", func(c *Config) { c.StationPickerSeed = nil }, ErrInvalidConfig},
		{"one station", func(c *Config) { c.Stations = c.Stations[:1] }, ErrInvalidConfig},
		{"unnamed station", func(c *Config) { c.Stations[0].Name = "" }, ErrInvalidConfig},
		{"duplicate station", func(c *Config) { c.Stations[1].Name = "A" }, ErrInvalidConfig},
		{"no destination", func(c *Config) { c.Stations[0].Destination = "" }, ErrMissingDestination},
		{"no travel time", func(c *Config) { c.Stations[0].TravelTime = nil }, ErrInvalidTravelTime},
		{"no spawn interval", func(c *Config) { c.Stations[0].SpawnInterval = nil }, ErrInvalidConfig},
		{"zero spawn interval", func(c *Config) { c.Stations[0].SpawnInterval = float64Ptr(0) }, ErrInvalidConfig},
		{"unnamed train", func(c *Config) { c.Trains = []TrainConfig{{Start: "A"}} }, ErrInvalidConfig},
		{"duplicate train", func(c *Config) {
			c.Trains = []TrainConfig{{Name: "T", Start: "A"}, {Name: "T", Start: "B"}}
		}, ErrInvalidConfig},
		{"train without start", func(c *Config) { c.Trains = []TrainConfig{{Name: "T"}} }, ErrInvalidConfig},
		{"train at unknown start", func(c *Config) { c.Trains = []TrainConfig{{Name: "T", Start: "Q"}} }, ErrUnknownStation},
		{"shared start", func(c *Config) {
			c.Trains = []TrainConfig{{Name: "T1", Start: "B"}, {Name: "T2", Start: "B"}}
		}, ErrDuplicateStartStation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := loopConfig(60, 30, "A", "B", "C")
			tc.mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

func TestConfig_Validate_ZeroWaitIsAllowed(t *testing.T) {
	cfg := loopConfig(60, 30, "A", "B")
	cfg.TrainWaitTime = float64Ptr(0)

	assert.NoError(t, cfg.Validate())
}

func TestConfig_YAML_RoundTripsThroughLoadConfig(t *testing.T) {
	cfg := loopConfig(60, 30, "A", "B")
	cfg.Trains = []TrainConfig{{Name: "T1", Start: "B"}}

	out, err := cfg.YAML()
	require.NoError(t, err)
	loaded, err := LoadConfig(writeConfig(t, string(out)))

	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
