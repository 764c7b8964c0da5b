package sim

import "fmt"

// Config holds the impairment profile for one simulated link.
// All durations are in seconds of simulation time. A Config is
// immutable once handed to NewImpairmentSimulator.
type Config struct {
	MinLatency float64 `yaml:"min_latency"` // lower bound for ordinary latency
	MaxLatency float64 `yaml:"max_latency"` // upper bound for ordinary latency
	LossRate   float64 `yaml:"loss_rate"`   // probability an enqueued packet is dropped

	BurstProbability float64 `yaml:"burst_probability"`  // per-enqueue chance a burst starts while not bursting
	BurstDuration    float64 `yaml:"burst_duration"`     // how long a burst stays active once started
	BurstLatencyMean float64 `yaml:"burst_latency_mean"` // mean added latency while bursting
}

// DefaultConfig returns the profile used by the stress scenarios:
// 50-300ms latency, 10% loss, 5% burst chance with 800ms burst latency.
func DefaultConfig() Config {
	return Config{
		MinLatency:       0.050,
		MaxLatency:       0.300,
		LossRate:         0.10,
		BurstProbability: 0.05,
		BurstDuration:    0.500,
		BurstLatencyMean: 0.800,
	}
}

// Validate checks bounds and probability ranges. Violations are
// construction-time errors, never silently clamped.
func (c Config) Validate() error {
	if c.MinLatency < 0 {
		return fmt.Errorf("min_latency must be non-negative, got %f", c.MinLatency)
	}
	if c.MaxLatency < c.MinLatency {
		return fmt.Errorf("max_latency (%f) must be >= min_latency (%f)", c.MaxLatency, c.MinLatency)
	}
	if c.LossRate < 0 || c.LossRate > 1 {
		return fmt.Errorf("loss_rate must be in [0,1], got %f", c.LossRate)
	}
	if c.BurstProbability < 0 || c.BurstProbability > 1 {
		return fmt.Errorf("burst_probability must be in [0,1], got %f", c.BurstProbability)
	}
	if c.BurstDuration < 0 {
		return fmt.Errorf("burst_duration must be non-negative, got %f", c.BurstDuration)
	}
	if c.BurstLatencyMean < 0 {
		return fmt.Errorf("burst_latency_mean must be non-negative, got %f", c.BurstLatencyMean)
	}
	return nil
}
