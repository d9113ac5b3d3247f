package sim

// DropReason tags a congestion drop with the policy that caused it.
// Congestion drops are normal outcomes, not errors; they flow into the
// drop-rate and per-flow fairness metrics.
type DropReason string

const (
	DropReasonNone DropReason = ""

	// DropReasonTail: global tail drop — the arriving packet was rejected
	// because total occupancy reached capacity. Used by FCFS, Priority
	// and Round-Robin.
	DropReasonTail DropReason = "tail-drop"

	// DropReasonFairShare: per-flow fair drop — the arriving packet's flow
	// already held its fair share of a full buffer. Used by Fair Queue.
	DropReasonFairShare DropReason = "fair-drop"

	// DropReasonLASEvict: max-service eviction — a previously-accepted
	// packet of the most-served flow was discarded to make room for the
	// arrival. Used by LAS.
	DropReasonLASEvict DropReason = "las-evict"
)

// markDropped stamps a packet's drop outcome. at is the simulated time of
// the drop decision (the victim's eviction time equals the newcomer's
// arrival time).
func markDropped(p *Packet, reason DropReason, at float64) {
	p.State = StateDropped
	p.Dropped = true
	p.DropTime = at
	p.DropReason = reason
}
