// Derives latency, throughput, drop-rate and fairness metrics from the
// stamped and dropped packet sets of one run.

package sim

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// Result is the raw output of one (discipline, packet-sequence) run: the
// full stamped packet set for external plotting, the dropped set for loss
// analysis, and the validation rejects on their own channel.
type Result struct {
	Discipline string
	Completed  []*Packet
	Dropped    []*Packet
	Invalid    []*Packet
}

// Summary holds the derived metrics of one run.
type Summary struct {
	Discipline string

	Offered   int // valid packets offered to the discipline
	Completed int
	Dropped   int
	Invalid   int

	AvgLatency     float64 // mean(finish - arrival) over completed packets
	AvgWaitingTime float64 // mean(start - arrival) over completed packets
	Throughput     float64 // completed / (max finish - min arrival, over all offered packets)
	DropRate       float64 // dropped / offered

	FairnessPerPacket float64 // Jain's index over completed-packet latencies
	FairnessPerFlow   float64 // Jain's index over per-flow processed/offered ratios

	DropsByFlow map[int]int // congestion drops per flow id
}

// Summarize computes the run's metrics. Safe on empty results: means and
// indices come out zero rather than NaN.
func (r *Result) Summarize() *Summary {
	s := &Summary{
		Discipline:  r.Discipline,
		Offered:     len(r.Completed) + len(r.Dropped),
		Completed:   len(r.Completed),
		Dropped:     len(r.Dropped),
		Invalid:     len(r.Invalid),
		DropsByFlow: make(map[int]int),
	}

	if len(r.Completed) > 0 {
		latencies := make([]float64, len(r.Completed))
		waits := make([]float64, len(r.Completed))
		minArrival := r.Completed[0].ArrivalTime
		maxFinish := r.Completed[0].FinishTime
		for i, p := range r.Completed {
			latencies[i] = p.Latency()
			waits[i] = p.WaitingTime()
			if p.ArrivalTime < minArrival {
				minArrival = p.ArrivalTime
			}
			if p.FinishTime > maxFinish {
				maxFinish = p.FinishTime
			}
		}
		s.AvgLatency = stat.Mean(latencies, nil)
		s.AvgWaitingTime = stat.Mean(waits, nil)
		// The window opens at the first offered arrival, dropped or not:
		// a run that sheds its earliest arrivals still paid for that time.
		for _, p := range r.Dropped {
			if p.ArrivalTime < minArrival {
				minArrival = p.ArrivalTime
			}
		}
		if window := maxFinish - minArrival; window > 0 {
			s.Throughput = float64(len(r.Completed)) / window
		}
		s.FairnessPerPacket = JainFairnessIndex(latencies)
	}

	if s.Offered > 0 {
		s.DropRate = float64(s.Dropped) / float64(s.Offered)
	}

	// Per-flow fairness over processed/offered ratios, covering every flow
	// that offered at least one packet. Flows with zero completions
	// contribute x_i = 0.
	offeredByFlow := make(map[int]int)
	completedByFlow := make(map[int]int)
	for _, p := range r.Completed {
		offeredByFlow[p.FlowID]++
		completedByFlow[p.FlowID]++
	}
	for _, p := range r.Dropped {
		offeredByFlow[p.FlowID]++
		s.DropsByFlow[p.FlowID]++
	}
	if len(offeredByFlow) > 0 {
		flowIDs := maps.Keys(offeredByFlow)
		slices.Sort(flowIDs)
		ratios := make([]float64, len(flowIDs))
		for i, flowID := range flowIDs {
			ratios[i] = float64(completedByFlow[flowID]) / float64(offeredByFlow[flowID])
		}
		s.FairnessPerFlow = JainFairnessIndex(ratios)
	}

	return s
}

// JainFairnessIndex computes (Σx)² / (n·Σx²) over the given values.
// Range [1/n, 1]; 1.0 means perfect equality. Returns 0 for empty input or
// when every value is zero.
func JainFairnessIndex(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	sumSq := 0.0
	for _, x := range values {
		sum += x
		sumSq += x * x
	}
	if sumSq == 0 {
		return 0
	}
	return (sum * sum) / (float64(len(values)) * sumSq)
}

// Print displays the summary at the end of a run.
func (s *Summary) Print() {
	fmt.Printf("=== %s ===\n", s.Discipline)
	fmt.Printf("Offered              : %d\n", s.Offered)
	fmt.Printf("Completed            : %d\n", s.Completed)
	fmt.Printf("Dropped              : %d (%.1f%%)\n", s.Dropped, s.DropRate*100)
	if s.Invalid > 0 {
		fmt.Printf("Invalid              : %d\n", s.Invalid)
	}
	fmt.Printf("Average Latency      : %.3f s\n", s.AvgLatency)
	fmt.Printf("Average Waiting Time : %.3f s\n", s.AvgWaitingTime)
	fmt.Printf("Throughput           : %.3f packets/s\n", s.Throughput)
	fmt.Printf("Fairness (packet)    : %.4f\n", s.FairnessPerPacket)
	fmt.Printf("Fairness (flow)      : %.4f\n", s.FairnessPerFlow)
	if len(s.DropsByFlow) > 0 {
		flowIDs := maps.Keys(s.DropsByFlow)
		slices.Sort(flowIDs)
		fmt.Println("Drops by flow:")
		for _, flowID := range flowIDs {
			fmt.Printf("  flow %d: %d\n", flowID, s.DropsByFlow[flowID])
		}
	}
}
