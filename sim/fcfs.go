// Implements the FCFS discipline: a single global queue served in strict
// arrival order, with global tail drop at capacity.

package sim

// FCFS serves packets First-Come-First-Served. Arrival order is already
// total (arrival timestamps broken by sequence id), so the backing store
// is a plain slice queue.
type FCFS struct {
	cfg   DisciplineConfig
	queue []*Packet
}

// NewFCFS creates an FCFS discipline.
func NewFCFS(cfg DisciplineConfig) *FCFS {
	return &FCFS{cfg: cfg}
}

func (f *FCFS) Name() string { return "fcfs" }

// Admit appends the packet, rejecting it outright when the buffer is full.
func (f *FCFS) Admit(p *Packet) (bool, *Packet) {
	p.FlowID = f.cfg.classify(p)
	if f.cfg.full(len(f.queue)) {
		markDropped(p, DropReasonTail, p.ArrivalTime)
		return false, nil
	}
	p.State = StateQueued
	f.queue = append(f.queue, p)
	return true, nil
}

// SelectNext pops the oldest queued packet, or nil when empty.
func (f *FCFS) SelectNext() *Packet {
	if len(f.queue) == 0 {
		return nil
	}
	p := f.queue[0]
	f.queue = f.queue[1:]
	return p
}

func (f *FCFS) IsEmpty() bool { return len(f.queue) == 0 }

func (f *FCFS) Occupancy() int { return len(f.queue) }

func (f *FCFS) OnServiceComplete(_ *Packet) {
	// No per-flow bookkeeping
}
