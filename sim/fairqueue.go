// Implements the Fair Queue discipline: self-clocked virtual-time
// scheduling that approximates bit-by-bit round robin, with per-flow fair
// drop.

package sim

// FairQueue keeps one queue per flow and serves packets in order of
// virtual finish time. Each admitted packet is tagged with
//
//	virtualFinish = max(virtualTime, lastFinish[flow]) + serviceTime
//
// and lastFinish[flow] advances to that tag, so a flow that has consumed
// more service accumulates larger tags and is deprioritized proportionally
// to the service it already received, independent of packet size. Selection
// pops the globally smallest tag and advances the virtual clock to it,
// which yields max-min fairness among continuously backlogged flows.
type FairQueue struct {
	cfg         DisciplineConfig
	flows       *flowTable
	virtualTime float64         // global virtual clock, monotonically non-decreasing
	lastFinish  map[int]float64 // per-flow virtual finish of the last admitted packet
	finishTags  map[int]float64 // packet id -> virtual finish tag, while queued
}

// NewFairQueue creates a Fair Queue discipline.
func NewFairQueue(cfg DisciplineConfig) *FairQueue {
	return &FairQueue{
		cfg:        cfg,
		flows:      newFlowTable(),
		lastFinish: make(map[int]float64),
		finishTags: make(map[int]float64),
	}
}

func (fq *FairQueue) Name() string { return "fair-queue" }

// Admit applies per-flow fair drop: when the buffer is full, the arrival
// is rejected only if its own flow already holds at least an even share
// floor(C/active) of the capacity. A flow below its share is admitted even
// at full occupancy, so a burst from one flow cannot lock every other flow
// out of the buffer; a flow above the naive even split is still admitted
// while total occupancy remains below capacity. Rejected packets leave the
// virtual-time bookkeeping untouched.
func (fq *FairQueue) Admit(p *Packet) (bool, *Packet) {
	p.FlowID = fq.cfg.classify(p)
	if fq.cfg.full(fq.flows.occupancy()) {
		if fq.flows.flowLen(p.FlowID) >= fq.fairShare(p.FlowID) {
			markDropped(p, DropReasonFairShare, p.ArrivalTime)
			return false, nil
		}
	}
	virtualStart := fq.virtualTime
	if lf := fq.lastFinish[p.FlowID]; lf > virtualStart {
		virtualStart = lf
	}
	finish := virtualStart + p.ServiceTime
	fq.lastFinish[p.FlowID] = finish
	fq.finishTags[p.ID] = finish
	p.State = StateQueued
	fq.flows.push(p.FlowID, p)
	return true, nil
}

// fairShare returns floor(capacity / active flows), minimum 1. The
// arriving packet's flow counts as active even when it has nothing queued.
func (fq *FairQueue) fairShare(arrivingFlow int) int {
	active := fq.flows.activeFlows()
	if fq.flows.flowLen(arrivingFlow) == 0 {
		active++
	}
	share := fq.cfg.Capacity / active
	if share < 1 {
		share = 1
	}
	return share
}

// SelectNext pops the head packet with the globally minimum virtual finish
// tag (ties broken by smaller flow id, then head order within the flow)
// and advances the virtual clock to that tag.
func (fq *FairQueue) SelectNext() *Packet {
	if fq.flows.occupancy() == 0 {
		return nil
	}
	bestFlow := 0
	bestFinish := 0.0
	found := false
	for _, flowID := range fq.flows.sortedFlowIDs() {
		head := fq.flows.head(flowID)
		if head == nil {
			continue
		}
		finish := fq.finishTags[head.ID]
		if !found || finish < bestFinish {
			bestFlow, bestFinish, found = flowID, finish, true
		}
	}
	if !found {
		return nil
	}
	fq.virtualTime = bestFinish
	p := fq.flows.pop(bestFlow)
	delete(fq.finishTags, p.ID)
	return p
}

func (fq *FairQueue) IsEmpty() bool { return fq.flows.occupancy() == 0 }

func (fq *FairQueue) Occupancy() int { return fq.flows.occupancy() }

func (fq *FairQueue) OnServiceComplete(_ *Packet) {
	// Bookkeeping happens at admission and selection; nothing to update here.
}
