package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJainFairnessIndex(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"equal values score 1", []float64{2, 2, 2, 2}, 1.0},
		{"single value scores 1", []float64{7}, 1.0},
		{"one-hot scores 1/n", []float64{5, 0, 0, 0}, 0.25},
		{"empty input scores 0", nil, 0},
		{"all-zero input scores 0", []float64{0, 0, 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, JainFairnessIndex(tc.values), 1e-12)
		})
	}
}

func TestJainFairnessIndex_Bounds(t *testing.T) {
	// GIVEN an uneven but non-degenerate allocation
	values := []float64{1, 2, 3, 4, 5}

	// THEN the index stays within [1/n, 1]
	got := JainFairnessIndex(values)
	assert.GreaterOrEqual(t, got, 1.0/float64(len(values)))
	assert.LessOrEqual(t, got, 1.0)
}

func TestResult_Summarize(t *testing.T) {
	// GIVEN two completed packets and one drop, stamped by hand
	completed1 := testPacket(0, 0.0, 1, 1.0)
	completed1.FlowID = 1
	completed1.StartTime = 0.0
	completed1.FinishTime = 1.0
	completed2 := testPacket(1, 1.0, 2, 1.0)
	completed2.FlowID = 2
	completed2.StartTime = 2.0
	completed2.FinishTime = 3.0
	dropped := testPacket(2, 1.5, 1, 1.0)
	dropped.FlowID = 1
	markDropped(dropped, DropReasonTail, 1.5)

	r := &Result{
		Discipline: "fcfs",
		Completed:  []*Packet{completed1, completed2},
		Dropped:    []*Packet{dropped},
	}

	// WHEN the run is summarized
	s := r.Summarize()

	// THEN counts and derived metrics line up
	assert.Equal(t, 3, s.Offered)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.Dropped)
	assert.Zero(t, s.Invalid)

	assert.InDelta(t, 1.5, s.AvgLatency, 1e-12)     // (1.0 + 2.0) / 2
	assert.InDelta(t, 0.5, s.AvgWaitingTime, 1e-12) // (0.0 + 1.0) / 2
	assert.InDelta(t, 2.0/3.0, s.Throughput, 1e-12) // 2 completed over [0, 3]
	assert.InDelta(t, 1.0/3.0, s.DropRate, 1e-12)

	assert.Equal(t, map[int]int{1: 1}, s.DropsByFlow)
}

func TestResult_Summarize_ThroughputWindowIncludesDroppedArrivals(t *testing.T) {
	// GIVEN the earliest arrival was dropped and only a later one completed
	lost := testPacket(0, 0.0, 1, 1.0)
	lost.FlowID = 1
	markDropped(lost, DropReasonTail, 0.0)
	served := testPacket(1, 4.0, 1, 1.0)
	served.FlowID = 1
	served.StartTime = 4.0
	served.FinishTime = 5.0

	r := &Result{Completed: []*Packet{served}, Dropped: []*Packet{lost}}

	// THEN the window opens at the dropped packet's arrival, so the run is
	// not credited with a tighter window than it actually occupied
	assert.InDelta(t, 1.0/5.0, r.Summarize().Throughput, 1e-12)
}

func TestResult_Summarize_PerFlowFairnessCountsZeroCompletionFlows(t *testing.T) {
	// GIVEN flow 1 fully served and flow 2 fully dropped
	served := testPacket(0, 0.0, 1, 1.0)
	served.FlowID = 1
	served.StartTime = 0.0
	served.FinishTime = 1.0
	lost := testPacket(1, 0.0, 2, 1.0)
	lost.FlowID = 2
	markDropped(lost, DropReasonTail, 0.0)

	r := &Result{Completed: []*Packet{served}, Dropped: []*Packet{lost}}
	s := r.Summarize()

	// THEN the starved flow drags per-flow fairness to 1/n, not 1
	assert.InDelta(t, 0.5, s.FairnessPerFlow, 1e-12)
}

func TestResult_Summarize_EmptyRun(t *testing.T) {
	// GIVEN a run that offered nothing
	s := (&Result{Discipline: "las"}).Summarize()

	// THEN every metric is zero rather than NaN
	assert.Zero(t, s.Offered)
	assert.Zero(t, s.AvgLatency)
	assert.Zero(t, s.Throughput)
	assert.Zero(t, s.DropRate)
	assert.Zero(t, s.FairnessPerPacket)
	assert.Zero(t, s.FairnessPerFlow)
	assert.Empty(t, s.DropsByFlow)
}
