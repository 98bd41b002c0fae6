package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/subway-sim/subway-sim/sim"
	"github.com/subway-sim/subway-sim/sim/record"
)

var (
	// CLI flags for locating inputs and outputs
	configDir  string // Directory holding <name>_config.yaml
	outDir     string // Directory receiving CSV files and the run log
	sqlitePath string // Optional SQLite database that also receives every record
	logLevel   string // Log verbosity level

	// CLI flags for stopping the run
	maxTime       float64 // Simulated seconds after which the run stops
	maxPassengers int     // Completed passengers after which the run stops
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "subway-sim",
	Short: "Fixed-step simulator for passenger flow on a subway loop",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runOptions carries the flag values into runSimulation.
type runOptions struct {
	ConfigDir     string
	OutDir        string
	SQLitePath    string
	MaxTime       float64
	MaxPassengers int
}

// configPath returns where the configuration for a named network lives.
func configPath(dir, name string) string {
	return filepath.Join(dir, name+"_config.yaml")
}

// runCmd executes the simulation for one named network
var runCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run the simulation described by <config-dir>/<name>_config.yaml",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		logrus.Infof("Starting simulation %q: max-time=%vs, max-passengers=%d", name, maxTime, maxPassengers)
		startTime := time.Now()

		m, err := runSimulation(cmd.Context(), name, runOptions{
			ConfigDir:     configDir,
			OutDir:        outDir,
			SQLitePath:    sqlitePath,
			MaxTime:       maxTime,
			MaxPassengers: maxPassengers,
		})
		if err != nil {
			logrus.Fatalf("Simulation %q failed: %v", name, err)
		}
		m.Print()

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// runSimulation loads the named network, runs it until either stop condition
// is reached and writes every output. The sinks are closed before returning.
func runSimulation(ctx context.Context, name string, opts runOptions) (*sim.Metrics, error) {
	cfg, err := sim.LoadConfig(configPath(opts.ConfigDir, name))
	if err != nil {
		return nil, err
	}

	// Every setup error surfaces here, before any output file or run row exists.
	if _, err := sim.NewSimulator(cfg, record.NewMemorySink()); err != nil {
		return nil, err
	}

	csvSink, err := record.NewCSVSink(opts.OutDir, name)
	if err != nil {
		return nil, err
	}
	sinks := []record.Sink{csvSink}
	if opts.SQLitePath != "" {
		dbSink, err := record.NewSQLiteSink(ctx, opts.SQLitePath, name)
		if err != nil {
			_ = csvSink.Close()
			return nil, err
		}
		logrus.Infof("Recording run %s to %s", dbSink.RunID(), opts.SQLitePath)
		sinks = append(sinks, dbSink)
	}
	sink := record.Tee(sinks...)

	s, err := sim.NewSimulator(cfg, sink)
	if err != nil {
		_ = sink.Close()
		return nil, err
	}

	for s.Clock < opts.MaxTime && s.CompletedPassengers() < opts.MaxPassengers {
		s.Step()
	}
	s.Finish()

	if err := sink.Close(); err != nil {
		return nil, fmt.Errorf("writing records: %w", err)
	}
	logPath := filepath.Join(opts.OutDir, name+"_log.txt")
	if err := sim.WriteRunLog(logPath, cfg, s.Metrics); err != nil {
		return nil, err
	}
	logrus.Infof("Run log written to %s", logPath)
	return s.Metrics, nil
}

// validateCmd builds the simulation without running it
var validateCmd = &cobra.Command{
	Use:   "validate <name>",
	Short: "Check that <config-dir>/<name>_config.yaml describes a runnable network",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := buildSimulation(configPath(configDir, args[0]))
		if err != nil {
			logrus.Fatalf("Invalid configuration %q: %v", args[0], err)
		}
		fmt.Printf("%s: %d stations, %d trains, dt=%vs\n",
			args[0], len(s.Track.Stations()), len(s.Trains), s.TimeStep)
	},
}

// buildSimulation loads and sets up a simulation that records nowhere.
func buildSimulation(path string) (*sim.Simulator, error) {
	cfg, err := sim.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return sim.NewSimulator(cfg, record.NewMemorySink())
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./config", "Directory containing <name>_config.yaml")

	runCmd.Flags().StringVar(&outDir, "out-dir", "./data", "Directory for passenger/train CSV files and the run log")
	runCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also record the run in this SQLite database")
	runCmd.Flags().Float64Var(&maxTime, "max-time", 86400, "Stop after this many simulated seconds")
	runCmd.Flags().IntVar(&maxPassengers, "max-passengers", 6000, "Stop once this many passengers have completed their trips")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
