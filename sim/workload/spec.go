package workload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioSpec is the top-level scenario configuration.
// Loaded from YAML via LoadScenario(path).
type ScenarioSpec struct {
	Seed        int64   `yaml:"seed"`
	NumPackets  int     `yaml:"num_packets"`
	ArrivalRate float64 `yaml:"arrival_rate"` // packets per second

	// TrafficModel selects the arrival process: "poisson" (default) or "bursty".
	TrafficModel string `yaml:"traffic_model,omitempty"`

	// PriorityWeights maps priority levels (higher = more urgent) to
	// relative selection weights. Defaults to {1: 0.5, 2: 0.3, 3: 0.2}.
	PriorityWeights map[int]float64 `yaml:"priority_weights,omitempty"`

	// SizeBuckets are weighted byte ranges packets draw their size from.
	SizeBuckets []SizeBucket `yaml:"size_buckets,omitempty"`

	ServiceTimeMin float64 `yaml:"service_time_min,omitempty"`
	ServiceTimeMax float64 `yaml:"service_time_max,omitempty"`

	// Capacity is the discipline buffer size in packets; 0 = unbounded.
	Capacity int `yaml:"capacity,omitempty"`

	// Disciplines to run in compare mode; empty means all of them.
	Disciplines []string `yaml:"disciplines,omitempty"`
}

// SizeBucket is a weighted inclusive byte range.
type SizeBucket struct {
	MinBytes int     `yaml:"min_bytes"`
	MaxBytes int     `yaml:"max_bytes"`
	Weight   float64 `yaml:"weight"`
}

// DefaultScenario returns the baseline scenario: 100 packets of Poisson
// traffic at 2 packets/s with the default priority and size mixes.
func DefaultScenario() *ScenarioSpec {
	return &ScenarioSpec{
		Seed:            42,
		NumPackets:      100,
		ArrivalRate:     2.0,
		TrafficModel:    "poisson",
		PriorityWeights: map[int]float64{1: 0.5, 2: 0.3, 3: 0.2},
		SizeBuckets: []SizeBucket{
			{MinBytes: 500, MaxBytes: 1000, Weight: 0.3},
			{MinBytes: 1000, MaxBytes: 2000, Weight: 0.5},
			{MinBytes: 2000, MaxBytes: 5000, Weight: 0.2},
		},
		ServiceTimeMin: 0.5,
		ServiceTimeMax: 2.0,
	}
}

// Validate checks the spec and fills defaults for omitted fields.
func (s *ScenarioSpec) Validate() error {
	if s.NumPackets <= 0 {
		return fmt.Errorf("num_packets must be positive, got %d", s.NumPackets)
	}
	if s.ArrivalRate <= 0 {
		return fmt.Errorf("arrival_rate must be positive, got %g", s.ArrivalRate)
	}
	switch s.TrafficModel {
	case "":
		s.TrafficModel = "poisson"
	case "poisson", "bursty":
	default:
		return fmt.Errorf("unknown traffic model %q; valid models: [poisson, bursty]", s.TrafficModel)
	}
	if len(s.PriorityWeights) == 0 {
		s.PriorityWeights = DefaultScenario().PriorityWeights
	}
	for level, w := range s.PriorityWeights {
		if w < 0 {
			return fmt.Errorf("priority %d has negative weight %g", level, w)
		}
	}
	if len(s.SizeBuckets) == 0 {
		s.SizeBuckets = DefaultScenario().SizeBuckets
	}
	for i, b := range s.SizeBuckets {
		if b.MinBytes <= 0 || b.MaxBytes < b.MinBytes {
			return fmt.Errorf("size bucket %d has invalid range [%d, %d]", i, b.MinBytes, b.MaxBytes)
		}
		if b.Weight < 0 {
			return fmt.Errorf("size bucket %d has negative weight %g", i, b.Weight)
		}
	}
	if s.ServiceTimeMin == 0 && s.ServiceTimeMax == 0 {
		s.ServiceTimeMin = 0.5
		s.ServiceTimeMax = 2.0
	}
	if s.ServiceTimeMin <= 0 || s.ServiceTimeMax < s.ServiceTimeMin {
		return fmt.Errorf("invalid service time range [%g, %g]", s.ServiceTimeMin, s.ServiceTimeMax)
	}
	return nil
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var spec ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &spec, nil
}
