// Package traffic generates synthetic telemetry packets for driving an
// impaired link. It stores pure data types plus samplers over an
// injected *rand.Rand; it has no dependency on the simulator itself.
package traffic

import (
	"fmt"
	"math"
	"math/rand"
)

// SizeSampler generates payload sizes.
type SizeSampler interface {
	// Sample returns a positive byte count (>= 1).
	Sample(rng *rand.Rand) int
}

// GaussianSampler produces clamped Gaussian payload sizes.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int {
	if s.min == s.max {
		return s.min
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	result := int(math.Round(clamped))
	if result < 1 {
		return 1
	}
	return result
}

// ExponentialSampler produces exponentially-distributed payload sizes.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int {
	val := rng.ExpFloat64() * s.mean
	result := int(math.Round(val))
	if result < 1 {
		return 1
	}
	return result
}

// SizeDist selects and parameterizes a SizeSampler.
type SizeDist struct {
	Kind   string  `yaml:"kind"` // "gaussian" (default) or "exponential"
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
}

// NewSizeSampler builds the sampler described by d.
func NewSizeSampler(d SizeDist) (SizeSampler, error) {
	switch d.Kind {
	case "", "gaussian":
		return &GaussianSampler{mean: d.Mean, stdDev: d.StdDev, min: d.Min, max: d.Max}, nil
	case "exponential":
		return &ExponentialSampler{mean: d.Mean}, nil
	default:
		return nil, fmt.Errorf("unknown size distribution %q", d.Kind)
	}
}

// Spec describes one synthetic telemetry producer.
type Spec struct {
	Topic          string   `yaml:"topic"`
	PacketsPerTick int      `yaml:"packets_per_tick"`
	Size           SizeDist `yaml:"size"`
}

// DefaultSpec is the vehicle-telemetry shape of the stress scenarios:
// ten ~200-byte packets per tick on the "telemetry" topic.
func DefaultSpec() Spec {
	return Spec{
		Topic:          "telemetry",
		PacketsPerTick: 10,
		Size:           SizeDist{Kind: "gaussian", Mean: 200, StdDev: 40, Min: 64, Max: 512},
	}
}

// Validate checks the spec before a generator is built from it.
func (sp Spec) Validate() error {
	if sp.Topic == "" {
		return fmt.Errorf("topic must not be empty")
	}
	if sp.PacketsPerTick < 0 {
		return fmt.Errorf("packets_per_tick must be non-negative, got %d", sp.PacketsPerTick)
	}
	if sp.Size.Mean <= 0 {
		return fmt.Errorf("size mean must be positive, got %f", sp.Size.Mean)
	}
	if sp.Size.Min > sp.Size.Max {
		return fmt.Errorf("size min (%d) must be <= max (%d)", sp.Size.Min, sp.Size.Max)
	}
	if _, err := NewSizeSampler(sp.Size); err != nil {
		return err
	}
	return nil
}

// Packet is one generated payload with its topic label.
type Packet struct {
	Topic   string
	Payload []byte
}

// Generator produces packets tick by tick. Deterministic given the
// same spec and rng stream.
type Generator struct {
	spec    Spec
	sampler SizeSampler
}

// NewGenerator validates the spec and builds a generator.
func NewGenerator(spec Spec) (*Generator, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid traffic spec: %w", err)
	}
	sampler, err := NewSizeSampler(spec.Size)
	if err != nil {
		return nil, err
	}
	return &Generator{spec: spec, sampler: sampler}, nil
}

// Tick returns the packets to enqueue for one simulation tick.
func (g *Generator) Tick(rng *rand.Rand) []Packet {
	packets := make([]Packet, 0, g.spec.PacketsPerTick)
	for i := 0; i < g.spec.PacketsPerTick; i++ {
		payload := make([]byte, g.sampler.Sample(rng))
		rng.Read(payload)
		packets = append(packets, Packet{Topic: g.spec.Topic, Payload: payload})
	}
	return packets
}
