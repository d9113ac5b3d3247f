package sim

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FlowClassifier maps a packet to its flow identifier. Flow-aware
// disciplines group per-flow state by this key. Implementations MUST be
// deterministic and MUST NOT modify the packet.
type FlowClassifier func(p *Packet) int

// PriorityClassifier uses the packet's priority level as its flow id.
// This is the default, matching the behavior observed in practice where
// traffic classes double as flows.
func PriorityClassifier(p *Packet) int {
	return p.Priority
}

// ModuloClassifier spreads packets across n flows by sequence number.
func ModuloClassifier(n int) FlowClassifier {
	if n <= 0 {
		panic(fmt.Sprintf("ModuloClassifier: n must be positive, got %d", n))
	}
	return func(p *Packet) int {
		return p.ID % n
	}
}

// NewFlowClassifier creates a FlowClassifier by name.
// Valid names: "priority" (default for empty string), "modulo".
// Panics on unrecognized names.
func NewFlowClassifier(name string, numQueues int) FlowClassifier {
	switch name {
	case "", "priority":
		return PriorityClassifier
	case "modulo":
		return ModuloClassifier(numQueues)
	default:
		panic(fmt.Sprintf("unknown flow classifier %q; valid classifiers: [priority, modulo]", name))
	}
}

// flowTable holds one FIFO queue per flow. Flow entries are created on
// first sight and never removed, even when momentarily empty, so per-flow
// bookkeeping keyed by the same ids stays valid for the run's lifetime.
type flowTable struct {
	queues map[int][]*Packet
	total  int
}

func newFlowTable() *flowTable {
	return &flowTable{queues: make(map[int][]*Packet)}
}

// push appends p to the back of its flow's queue.
func (ft *flowTable) push(flowID int, p *Packet) {
	ft.queues[flowID] = append(ft.queues[flowID], p)
	ft.total++
}

// pop removes and returns the head packet of the given flow.
// Returns nil if the flow has no queued packets.
func (ft *flowTable) pop(flowID int) *Packet {
	q := ft.queues[flowID]
	if len(q) == 0 {
		return nil
	}
	p := q[0]
	ft.queues[flowID] = q[1:]
	ft.total--
	return p
}

// popTail removes and returns the most recently queued packet of the given
// flow. Used by the LAS eviction policy.
func (ft *flowTable) popTail(flowID int) *Packet {
	q := ft.queues[flowID]
	if len(q) == 0 {
		return nil
	}
	p := q[len(q)-1]
	ft.queues[flowID] = q[:len(q)-1]
	ft.total--
	return p
}

// head returns the front packet of the given flow without removing it.
func (ft *flowTable) head(flowID int) *Packet {
	q := ft.queues[flowID]
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

// flowLen returns the number of packets queued for the given flow.
func (ft *flowTable) flowLen(flowID int) int {
	return len(ft.queues[flowID])
}

// occupancy returns the total number of queued packets across all flows.
func (ft *flowTable) occupancy() int {
	return ft.total
}

// activeFlows returns the number of flows holding at least one packet.
func (ft *flowTable) activeFlows() int {
	n := 0
	for _, q := range ft.queues {
		if len(q) > 0 {
			n++
		}
	}
	return n
}

// sortedFlowIDs returns every flow id ever seen, in ascending order.
// Map iteration order is randomized in Go; selection loops iterate over
// this slice instead so identical histories give identical choices.
func (ft *flowTable) sortedFlowIDs() []int {
	ids := maps.Keys(ft.queues)
	slices.Sort(ids)
	return ids
}
