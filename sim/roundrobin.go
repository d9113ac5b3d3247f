// Implements the Round-Robin discipline: a fixed set of sub-queues visited
// cyclically, with global tail drop applied to total occupancy.

package sim

// DefaultRRQueues is the sub-queue count used when none is configured.
const DefaultRRQueues = 3

// RoundRobin distributes packets across a fixed number of sub-queues and
// serves them with a rotating pointer: each selection pops the head of the
// next non-empty sub-queue and leaves the pointer on the following one.
type RoundRobin struct {
	cfg    DisciplineConfig
	queues [][]*Packet
	next   int // sub-queue the next selection starts from
	total  int
}

// NewRoundRobin creates a Round-Robin discipline with cfg.NumQueues
// sub-queues (DefaultRRQueues when unset). Unless a classifier is
// configured, packets spread across sub-queues by sequence number.
func NewRoundRobin(cfg DisciplineConfig) *RoundRobin {
	n := cfg.NumQueues
	if n <= 0 {
		n = DefaultRRQueues
	}
	if cfg.Classifier == nil {
		cfg.Classifier = ModuloClassifier(n)
	}
	return &RoundRobin{
		cfg:    cfg,
		queues: make([][]*Packet, n),
	}
}

func (rr *RoundRobin) Name() string { return "round-robin" }

// Admit enqueues the packet on its flow's sub-queue, rejecting it when
// total occupancy across all sub-queues has reached capacity.
func (rr *RoundRobin) Admit(p *Packet) (bool, *Packet) {
	p.FlowID = rr.cfg.classify(p)
	if rr.cfg.full(rr.total) {
		markDropped(p, DropReasonTail, p.ArrivalTime)
		return false, nil
	}
	idx := p.FlowID % len(rr.queues)
	if idx < 0 {
		idx += len(rr.queues)
	}
	p.State = StateQueued
	rr.queues[idx] = append(rr.queues[idx], p)
	rr.total++
	return true, nil
}

// SelectNext advances the pointer cyclically to the first non-empty
// sub-queue, pops its head, and leaves the pointer on the next sub-queue.
func (rr *RoundRobin) SelectNext() *Packet {
	if rr.total == 0 {
		return nil
	}
	n := len(rr.queues)
	for i := 0; i < n; i++ {
		idx := (rr.next + i) % n
		if len(rr.queues[idx]) == 0 {
			continue
		}
		p := rr.queues[idx][0]
		rr.queues[idx] = rr.queues[idx][1:]
		rr.total--
		rr.next = (idx + 1) % n
		return p
	}
	return nil
}

func (rr *RoundRobin) IsEmpty() bool { return rr.total == 0 }

func (rr *RoundRobin) Occupancy() int { return rr.total }

func (rr *RoundRobin) OnServiceComplete(_ *Packet) {
	// No per-flow bookkeeping
}
