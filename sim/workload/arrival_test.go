package workload

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrivalSamplers_AlwaysPositive(t *testing.T) {
	for _, model := range []string{"poisson", "bursty"} {
		t.Run(model, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			s := NewArrivalSampler(model, 4.0)
			for i := 0; i < 1000; i++ {
				if iat := s.SampleIAT(rng); iat < 0 {
					t.Fatalf("sample %d: negative inter-arrival time %g", i, iat)
				}
			}
		})
	}
}

func TestPoissonSampler_MeanTracksRate(t *testing.T) {
	// GIVEN a Poisson process at 2 packets/s
	rng := rand.New(rand.NewSource(42))
	s := NewArrivalSampler("poisson", 2.0)

	// WHEN many inter-arrival times are drawn
	sum := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		sum += s.SampleIAT(rng)
	}

	// THEN the mean IAT is close to 1/rate
	assert.InDelta(t, 0.5, sum/n, 0.02)
}

func TestBurstySampler_PreservesLongRunRate(t *testing.T) {
	// GIVEN a bursty process at the same nominal rate
	rng := rand.New(rand.NewSource(42))
	s := NewArrivalSampler("bursty", 2.0)

	sum := 0.0
	const n = 50000
	for i := 0; i < n; i++ {
		sum += s.SampleIAT(rng)
	}

	// THEN burstiness changes the variance, not the mean rate
	assert.InDelta(t, 0.5, sum/n, 0.05)
}

func TestNewArrivalSampler_Defaults(t *testing.T) {
	assert.IsType(t, &PoissonSampler{}, NewArrivalSampler("", 1.0))
	assert.IsType(t, &PoissonSampler{}, NewArrivalSampler("poisson", 1.0))
	assert.IsType(t, &BurstySampler{}, NewArrivalSampler("bursty", 1.0))
}

func TestNewArrivalSampler_Panics(t *testing.T) {
	assert.Panics(t, func() { NewArrivalSampler("pareto", 1.0) })
	assert.Panics(t, func() { NewArrivalSampler("poisson", 0) })
	assert.Panics(t, func() { NewArrivalSampler("poisson", -1.0) })
}
