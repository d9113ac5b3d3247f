package workload

import (
	"fmt"
	"math/rand"
)

// ArrivalSampler generates inter-arrival times for the packet stream.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in seconds.
	// Always returns a positive value.
	SampleIAT(rng *rand.Rand) float64
}

// PoissonSampler generates exponentially-distributed inter-arrival times
// (a Poisson arrival process).
type PoissonSampler struct {
	rate float64 // packets per second
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) float64 {
	return rng.ExpFloat64() / s.rate
}

// BurstySampler generates on/off arrivals: geometric-length bursts of
// closely spaced packets separated by long exponential gaps. The mean
// rate stays at the configured rate; only the variance grows.
type BurstySampler struct {
	rate      float64 // long-run packets per second
	burstMean float64 // mean packets per burst
	compress  float64 // intra-burst spacing = (1/rate) / compress

	remaining int // packets left in the current burst
}

func (s *BurstySampler) SampleIAT(rng *rand.Rand) float64 {
	meanIAT := 1.0 / s.rate
	if s.remaining > 0 {
		s.remaining--
		return rng.ExpFloat64() * meanIAT / s.compress
	}
	// Start a new burst: geometric length with the configured mean.
	s.remaining = 1
	for rng.Float64() > 1.0/s.burstMean {
		s.remaining++
	}
	s.remaining--
	// The inter-burst gap absorbs the time the burst saved, keeping the
	// long-run rate intact: a burst of mean length B spends (B-1)/compress
	// mean IATs inside the burst, so the gap carries the other
	// B - (B-1)/compress.
	gapMean := meanIAT * (s.burstMean - (s.burstMean-1.0)/s.compress)
	return rng.ExpFloat64() * gapMean
}

// NewArrivalSampler creates an ArrivalSampler by traffic-model name.
// Valid models: "poisson" (default for empty string), "bursty".
// Panics on unrecognized names and non-positive rates.
func NewArrivalSampler(model string, rate float64) ArrivalSampler {
	if rate <= 0 {
		panic(fmt.Sprintf("arrival rate must be positive, got %g", rate))
	}
	switch model {
	case "", "poisson":
		return &PoissonSampler{rate: rate}
	case "bursty":
		return &BurstySampler{rate: rate, burstMean: 5.0, compress: 10.0}
	default:
		panic(fmt.Sprintf("unknown traffic model %q; valid models: [poisson, bursty]", model))
	}
}
