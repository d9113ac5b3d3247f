// Implements the Least-Attained-Service discipline: the flow that has
// consumed the least service is always served first, and congestion evicts
// from the most-served flow.

package sim

// LAS tracks cumulative attained service per flow and always selects the
// head of the flow with the minimum. A flow that has transmitted nothing
// is preferred over any flow that has transmitted anything, which protects
// short "mouse" flows without explicit priority tags, at the cost of
// potentially starving a continuously-active "elephant" flow while any
// other flow remains active. Attained service is never reset.
type LAS struct {
	cfg      DisciplineConfig
	flows    *flowTable
	attained map[int]float64 // per-flow cumulative service time
}

// NewLAS creates a LAS discipline.
func NewLAS(cfg DisciplineConfig) *LAS {
	return &LAS{
		cfg:      cfg,
		flows:    newFlowTable(),
		attained: make(map[int]float64),
	}
}

func (l *LAS) Name() string { return "las" }

// Admit always accepts the arrival. When the buffer is full it first
// evicts the tail packet of the most-served flow among flows with queued
// packets, so the flow that already got the most service pays for the
// congestion rather than the newcomer.
func (l *LAS) Admit(p *Packet) (bool, *Packet) {
	p.FlowID = l.cfg.classify(p)
	var victim *Packet
	if l.cfg.full(l.flows.occupancy()) {
		victim = l.flows.popTail(l.mostServedActiveFlow())
		if victim != nil {
			markDropped(victim, DropReasonLASEvict, p.ArrivalTime)
		}
	}
	p.State = StateQueued
	l.flows.push(p.FlowID, p)
	return true, victim
}

// mostServedActiveFlow returns the flow with maximum attained service
// among flows holding at least one queued packet (ties broken by smaller
// flow id).
func (l *LAS) mostServedActiveFlow() int {
	bestFlow := 0
	bestAttained := 0.0
	found := false
	for _, flowID := range l.flows.sortedFlowIDs() {
		if l.flows.flowLen(flowID) == 0 {
			continue
		}
		if !found || l.attained[flowID] > bestAttained {
			bestFlow, bestAttained, found = flowID, l.attained[flowID], true
		}
	}
	return bestFlow
}

// SelectNext pops the head of the non-empty flow with minimum attained
// service (ties broken by smaller flow id).
func (l *LAS) SelectNext() *Packet {
	if l.flows.occupancy() == 0 {
		return nil
	}
	bestFlow := 0
	bestAttained := 0.0
	found := false
	for _, flowID := range l.flows.sortedFlowIDs() {
		if l.flows.flowLen(flowID) == 0 {
			continue
		}
		if !found || l.attained[flowID] < bestAttained {
			bestFlow, bestAttained, found = flowID, l.attained[flowID], true
		}
	}
	if !found {
		return nil
	}
	return l.flows.pop(bestFlow)
}

func (l *LAS) IsEmpty() bool { return l.flows.occupancy() == 0 }

func (l *LAS) Occupancy() int { return l.flows.occupancy() }

// OnServiceComplete charges the finished packet's service time to its flow.
func (l *LAS) OnServiceComplete(p *Packet) {
	l.attained[p.FlowID] += p.ServiceTime
}
