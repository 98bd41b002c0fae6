// sim/metrics_utils.go
package sim

import (
	"bufio"
	"fmt"
	"math"
	"os"
)

// RunningStats holds running statistics using Welford's online algorithm,
// so trip times never need to be stored.
// Reference: https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance#Welford's_online_algorithm
type RunningStats struct {
	count int     // number of observations
	mean  float64 // running mean
	m2    float64 // sum of squared differences from mean
}

// Update adds a new observation.
func (r *RunningStats) Update(v float64) {
	r.count++
	delta := v - r.mean
	r.mean += delta / float64(r.count)
	r.m2 += delta * (v - r.mean)
}

// Count returns the number of observations.
func (r *RunningStats) Count() int {
	return r.count
}

// Mean returns the current mean, 0 with no observations.
func (r *RunningStats) Mean() float64 {
	return r.mean
}

// StdDev returns the population standard deviation.
// Returns 0 if fewer than 2 observations.
func (r *RunningStats) StdDev() float64 {
	if r.count < 2 {
		return 0
	}
	return math.Sqrt(r.m2 / float64(r.count))
}

// WriteRunLog writes the effective configuration followed by the run totals
// to path.
func WriteRunLog(path string, cfg *Config, m *Metrics) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating run log: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing run log: %w", closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	cfgYAML, err := cfg.YAML()
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	if _, err := writer.Write(cfgYAML); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}
	fmt.Fprintf(writer, "Total passengers: %d\n", m.CompletedPassengers)
	fmt.Fprintf(writer, "Total time (seconds): %v\n", m.SimEndedTime)
	fmt.Fprintf(writer, "Passengers/second: %v\n", m.Throughput())
	fmt.Fprintf(writer, "Seconds/Passenger: %v\n", m.SecondsPerPassenger())
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}
	return nil
}
