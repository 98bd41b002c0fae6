package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by ApplyDefaults to unset global parameters.
const (
	DefaultBoardTime     = 10.0  // seconds per passenger getting on or off
	DefaultTrainWaitTime = 120.0 // seconds a train waits for boarders
	DefaultTrainCapacity = 160
	DefaultSeed          = int64(-1) // negative: draw from entropy
)

// Config holds the subway network and global simulation parameters,
// loadable from a YAML file.
// Nil pointer fields mean "not set in YAML"; ApplyDefaults fills them.
type Config struct {
	TimeStep           *float64 `yaml:"time_step"`       // default: board_time
	BoardTime          *float64 `yaml:"board_time"`      // default: 10
	TrainWaitTime      *float64 `yaml:"train_wait_time"` // default: 120
	TrainCapacity      *int     `yaml:"train_capacity"`  // default: 160
	PassengerSpawnSeed *int64   `yaml:"passenger_spawn_seed"`
	StationPickerSeed  *int64   `yaml:"station_picker_seed"`

	Stations []StationConfig `yaml:"stations"`
	Trains   []TrainConfig   `yaml:"trains"`
}

// StationConfig defines one station and its outgoing leg of the track.
type StationConfig struct {
	Name          string   `yaml:"name"`
	Destination   string   `yaml:"destination"`
	TravelTime    *float64 `yaml:"travel_time"`    // seconds to Destination
	SpawnInterval *float64 `yaml:"spawn_interval"` // mean seconds between passenger spawns
}

// TrainConfig places one train on the track.
type TrainConfig struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
}

// LoadConfig reads a YAML network configuration, rejecting unknown keys,
// and applies defaults. It does not validate; NewSimulator does.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills every unset global parameter. The time step defaults
// to the board time, the smallest thing that happens in the simulation.
func (c *Config) ApplyDefaults() {
	if c.BoardTime == nil {
		v := DefaultBoardTime
		c.BoardTime = &v
	}
	if c.TimeStep == nil {
		v := *c.BoardTime
		c.TimeStep = &v
	}
	if c.TrainWaitTime == nil {
		v := DefaultTrainWaitTime
		c.TrainWaitTime = &v
	}
	if c.TrainCapacity == nil {
		v := DefaultTrainCapacity
		c.TrainCapacity = &v
	}
	if c.PassengerSpawnSeed == nil {
		v := DefaultSeed
		c.PassengerSpawnSeed = &v
	}
	if c.StationPickerSeed == nil {
		v := DefaultSeed
		c.StationPickerSeed = &v
	}
}

// Validate checks parameter ranges and the station/train definitions.
// Track topology (unknown destinations, cycles) is checked by NewTrack.
func (c *Config) Validate() error {
	if c.TimeStep == nil || c.BoardTime == nil || c.TrainWaitTime == nil ||
		c.TrainCapacity == nil || c.PassengerSpawnSeed == nil || c.StationPickerSeed == nil {
		return fmt.Errorf("%w: global parameters unset; call ApplyDefaults first", ErrInvalidConfig)
	}
	if !(*c.TimeStep > 0) {
		return fmt.Errorf("%w: time_step must be positive, got %v", ErrInvalidConfig, *c.TimeStep)
	}
	if !(*c.BoardTime > 0) {
		return fmt.Errorf("%w: board_time must be positive, got %v", ErrInvalidConfig, *c.BoardTime)
	}
	if !(*c.TrainWaitTime >= 0) {
		return fmt.Errorf("%w: train_wait_time must be non-negative, got %v", ErrInvalidConfig, *c.TrainWaitTime)
	}
	if *c.TrainCapacity <= 0 {
		return fmt.Errorf("%w: train_capacity must be positive, got %d", ErrInvalidConfig, *c.TrainCapacity)
	}

	if len(c.Stations) < 2 {
		return fmt.Errorf("%w: need at least 2 stations, got %d", ErrInvalidConfig, len(c.Stations))
	}
	stations := make(map[string]bool, len(c.Stations))
	for i, s := range c.Stations {
		if s.Name == "" {
			return fmt.Errorf("%w: station %d has no name", ErrInvalidConfig, i)
		}
		if stations[s.Name] {
			return fmt.Errorf("%w: duplicate station %q", ErrInvalidConfig, s.Name)
		}
		stations[s.Name] = true
		if s.Destination == "" {
			return fmt.Errorf("%w: %q", ErrMissingDestination, s.Name)
		}
		if s.TravelTime == nil {
			return fmt.Errorf("%w: travel time not set for station %q", ErrInvalidTravelTime, s.Name)
		}
		if s.SpawnInterval == nil || !(*s.SpawnInterval > 0) {
			return fmt.Errorf("%w: spawn_interval of station %q must be set and positive", ErrInvalidConfig, s.Name)
		}
	}

	trains := make(map[string]bool, len(c.Trains))
	starts := make(map[string]string, len(c.Trains))
	for i, tr := range c.Trains {
		if tr.Name == "" {
			return fmt.Errorf("%w: train %d has no name", ErrInvalidConfig, i)
		}
		if trains[tr.Name] {
			return fmt.Errorf("%w: duplicate train %q", ErrInvalidConfig, tr.Name)
		}
		trains[tr.Name] = true
		if tr.Start == "" {
			return fmt.Errorf("%w: start station not set for train %q", ErrInvalidConfig, tr.Name)
		}
		if !stations[tr.Start] {
			return fmt.Errorf("%w: start %q of train %q", ErrUnknownStation, tr.Start, tr.Name)
		}
		if other, dup := starts[tr.Start]; dup {
			return fmt.Errorf("%w: %q and %q both start at %q", ErrDuplicateStartStation, other, tr.Name, tr.Start)
		}
		starts[tr.Start] = tr.Name
	}
	return nil
}

// Legs converts the station definitions into track legs.
func (c *Config) Legs() []Leg {
	legs := make([]Leg, 0, len(c.Stations))
	for _, s := range c.Stations {
		leg := Leg{From: s.Name, To: s.Destination}
		if s.TravelTime != nil {
			leg.TravelTime = *s.TravelTime
		}
		legs = append(legs, leg)
	}
	return legs
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
