// Generates packet sequences for simulation runs: arrival times from a
// configurable process, priorities and sizes from weighted distributions.

package workload

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/qos-sim/qos-sim/sim"
)

// Generator produces deterministic packet sequences from a ScenarioSpec.
// The same spec (including seed) always yields an identical sequence.
type Generator struct {
	rng    *rand.Rand
	nextID int
}

// NewGenerator creates a Generator seeded from the given value.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// GeneratePackets produces spec.NumPackets packets with non-decreasing
// arrival times and strictly increasing ids, ready for Engine.Run.
func (g *Generator) GeneratePackets(spec *ScenarioSpec) []*sim.Packet {
	sampler := NewArrivalSampler(spec.TrafficModel, spec.ArrivalRate)
	priorities := newWeightedIntChooser(spec.PriorityWeights)

	bucketWeights := make([]float64, len(spec.SizeBuckets))
	for i, b := range spec.SizeBuckets {
		bucketWeights[i] = b.Weight
	}

	packets := make([]*sim.Packet, 0, spec.NumPackets)
	currentTime := 0.0
	for i := 0; i < spec.NumPackets; i++ {
		currentTime += sampler.SampleIAT(g.rng)

		bucket := spec.SizeBuckets[chooseWeighted(g.rng, bucketWeights)]
		size := bucket.MinBytes + g.rng.Intn(bucket.MaxBytes-bucket.MinBytes+1)
		service := spec.ServiceTimeMin + g.rng.Float64()*(spec.ServiceTimeMax-spec.ServiceTimeMin)

		packets = append(packets, &sim.Packet{
			ID:          g.nextID,
			ArrivalTime: currentTime,
			Size:        size,
			ServiceTime: service,
			Priority:    priorities.choose(g.rng),
		})
		g.nextID++
	}
	logrus.Debugf("generated %d packets over %.3fs (%s arrivals at %.2f/s)",
		len(packets), currentTime, spec.TrafficModel, spec.ArrivalRate)
	return packets
}

// weightedIntChooser picks integer keys with probability proportional to
// their weights. Keys are iterated in sorted order so identical seeds give
// identical draws regardless of map iteration order.
type weightedIntChooser struct {
	keys    []int
	weights []float64
}

func newWeightedIntChooser(weightsByKey map[int]float64) *weightedIntChooser {
	keys := maps.Keys(weightsByKey)
	slices.Sort(keys)
	weights := make([]float64, len(keys))
	for i, k := range keys {
		weights[i] = weightsByKey[k]
	}
	return &weightedIntChooser{keys: keys, weights: weights}
}

func (c *weightedIntChooser) choose(rng *rand.Rand) int {
	return c.keys[chooseWeighted(rng, c.weights)]
}

// chooseWeighted returns an index drawn with probability proportional to
// the given weights. A degenerate all-zero weight vector yields index 0.
func chooseWeighted(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	u := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u < acc {
			return i
		}
	}
	return len(weights) - 1
}
