package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// === SimulationKey ===

// SimulationKey identifies a reproducible random stream.
// Two simulations built from the same keys and identical configuration
// MUST produce bit-for-bit identical records.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a configured seed.
// A negative seed means "no seed given": a time-based key is drawn instead
// and the run is not reproducible.
func NewSimulationKey(seed int64) SimulationKey {
	if seed < 0 {
		drawn := time.Now().UnixNano()
		logrus.Infof("negative seed %d: using entropy seed %d", seed, drawn)
		return SimulationKey(drawn)
	}
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemDestination is the RNG subsystem for passenger destination picks.
	// Uses the master seed directly.
	SubsystemDestination = "destination"
)

// SubsystemStation returns the subsystem name for a station's arrival process.
func SubsystemStation(name string) string {
	return fmt.Sprintf("station_%s", name)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemDestination: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemDestination {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
