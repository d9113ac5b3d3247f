// Implements the Priority discipline: a single heap ordered by
// (priority desc, arrival asc, id asc), with global tail drop at capacity.

package sim

import "container/heap"

// packetHeap implements heap.Interface over queued packets.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type packetHeap []*Packet

func (h packetHeap) Len() int { return len(h) }

func (h packetHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority // higher priority wins
	}
	if h[i].ArrivalTime != h[j].ArrivalTime {
		return h[i].ArrivalTime < h[j].ArrivalTime
	}
	return h[i].ID < h[j].ID
}

func (h packetHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *packetHeap) Push(x any) {
	*h = append(*h, x.(*Packet))
}

func (h *packetHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// Priority serves the strictly highest-priority queued packet first; equal
// priority falls back to arrival order. There is no starvation protection:
// a steady stream of high-priority traffic starves everything below it,
// which is the intended contrast with the fairness-aware disciplines.
type Priority struct {
	cfg  DisciplineConfig
	heap packetHeap
}

// NewPriority creates a Priority discipline.
func NewPriority(cfg DisciplineConfig) *Priority {
	return &Priority{cfg: cfg, heap: make(packetHeap, 0)}
}

func (pq *Priority) Name() string { return "priority" }

// Admit pushes the packet onto the heap, rejecting it when the buffer is full.
func (pq *Priority) Admit(p *Packet) (bool, *Packet) {
	p.FlowID = pq.cfg.classify(p)
	if pq.cfg.full(len(pq.heap)) {
		markDropped(p, DropReasonTail, p.ArrivalTime)
		return false, nil
	}
	p.State = StateQueued
	heap.Push(&pq.heap, p)
	return true, nil
}

// SelectNext pops the highest-priority packet, or nil when empty.
func (pq *Priority) SelectNext() *Packet {
	if len(pq.heap) == 0 {
		return nil
	}
	return heap.Pop(&pq.heap).(*Packet)
}

func (pq *Priority) IsEmpty() bool { return len(pq.heap) == 0 }

func (pq *Priority) Occupancy() int { return len(pq.heap) }

func (pq *Priority) OnServiceComplete(_ *Packet) {
	// No per-flow bookkeeping
}
