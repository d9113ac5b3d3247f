// The discrete-event engine: feeds an arrival-ordered packet sequence into
// a discipline, advances the simulated clock, and stamps service times.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Invalid-input handling modes for the engine.
const (
	// OnInvalidReject records the offending packet on a separate error
	// channel and continues the run (default).
	OnInvalidReject = "reject-and-continue"
	// OnInvalidAbort stops the whole run with a ValidationError.
	OnInvalidAbort = "abort"
)

// ValidationError reports a malformed packet in the input sequence.
// It is fatal to that packet; whether it is fatal to the run depends on
// the engine's OnInvalid mode. Invalid values are never silently coerced.
type ValidationError struct {
	PacketID int
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid packet %d: %s", e.PacketID, e.Reason)
}

// EngineConfig groups engine knobs.
type EngineConfig struct {
	OnInvalid string // OnInvalidReject (default for "") or OnInvalidAbort
}

// Engine drives one simulation run. It owns the simulated clock and the
// packet currently in service; the discipline owns everything queued.
// Each run constructs a fresh Engine/Discipline pair, so no state leaks
// across runs.
type Engine struct {
	Clock      float64
	Discipline Discipline

	Completed []*Packet
	Dropped   []*Packet
	Invalid   []*Packet

	abortOnInvalid bool
	lastID         int
	lastArrival    float64
	seen           bool // whether any valid packet has been offered yet
}

// NewEngine creates an engine around a freshly constructed discipline.
// Panics on an unrecognized OnInvalid mode.
func NewEngine(d Discipline, cfg EngineConfig) *Engine {
	abort := false
	switch cfg.OnInvalid {
	case "", OnInvalidReject:
	case OnInvalidAbort:
		abort = true
	default:
		panic(fmt.Sprintf("unknown invalid-input mode %q; valid modes: [%s, %s]",
			cfg.OnInvalid, OnInvalidReject, OnInvalidAbort))
	}
	return &Engine{
		Discipline:     d,
		abortOnInvalid: abort,
	}
}

// Run processes the whole input sequence to exhaustion and returns the
// collected Result. The loop alternates between admitting every packet
// that has arrived by the current clock value and serving one selected
// packet; when the discipline is empty the clock jumps to the next
// arrival. Service is non-preemptive: start = max(clock, arrival),
// finish = start + service, and the clock advances to finish.
//
// In OnInvalidAbort mode Run returns a *ValidationError on the first
// malformed packet; otherwise the error is always nil.
func (e *Engine) Run(packets []*Packet) (*Result, error) {
	idx := 0
	for idx < len(packets) || !e.Discipline.IsEmpty() {
		// Admit everything that has arrived by now.
		for idx < len(packets) && packets[idx].ArrivalTime <= e.Clock {
			p := packets[idx]
			idx++
			if err := e.validate(p); err != nil {
				if e.abortOnInvalid {
					return nil, err
				}
				p.State = StateRejected
				e.Invalid = append(e.Invalid, p)
				logrus.Warnf("[t=%9.3f] rejecting %s: %v", e.Clock, p, err)
				continue
			}
			e.admit(p)
		}

		if !e.Discipline.IsEmpty() {
			e.serveNext()
		} else if idx < len(packets) {
			// Idle server, nothing queued: jump to the next arrival.
			e.Clock = packets[idx].ArrivalTime
		}
	}
	logrus.Debugf("[t=%9.3f] run ended: %d completed, %d dropped, %d invalid",
		e.Clock, len(e.Completed), len(e.Dropped), len(e.Invalid))
	return &Result{
		Discipline: e.Discipline.Name(),
		Completed:  e.Completed,
		Dropped:    e.Dropped,
		Invalid:    e.Invalid,
	}, nil
}

// admit offers one packet to the discipline and records drop outcomes.
func (e *Engine) admit(p *Packet) {
	accepted, victim := e.Discipline.Admit(p)
	if victim != nil {
		e.Dropped = append(e.Dropped, victim)
		logrus.Debugf("[t=%9.3f] evicted %s (%s)", e.Clock, victim, victim.DropReason)
	}
	if !accepted {
		e.Dropped = append(e.Dropped, p)
		logrus.Debugf("[t=%9.3f] dropped %s (%s)", e.Clock, p, p.DropReason)
		return
	}
	logrus.Debugf("[t=%9.3f] admitted %s (occupancy %d)", e.Clock, p, e.Discipline.Occupancy())
}

// serveNext selects one packet, occupies the server for its full service
// time, and stamps its outcome.
func (e *Engine) serveNext() {
	p := e.Discipline.SelectNext()
	if p == nil {
		return
	}
	start := e.Clock
	if p.ArrivalTime > start {
		start = p.ArrivalTime
	}
	p.StartTime = start
	p.FinishTime = start + p.ServiceTime
	p.State = StateCompleted
	e.Clock = p.FinishTime
	e.Completed = append(e.Completed, p)
	e.Discipline.OnServiceComplete(p)
	logrus.Debugf("[t=%9.3f] served %s (wait %.3f)", e.Clock, p, p.WaitingTime())
}

// validate checks a packet against the previous valid packet in the
// sequence. Invalid packets count as neither completed nor dropped.
func (e *Engine) validate(p *Packet) error {
	switch {
	case p.Size <= 0:
		return &ValidationError{PacketID: p.ID, Reason: fmt.Sprintf("size must be positive, got %d", p.Size)}
	case p.ServiceTime <= 0:
		return &ValidationError{PacketID: p.ID, Reason: fmt.Sprintf("service time must be positive, got %g", p.ServiceTime)}
	case p.ArrivalTime < 0:
		return &ValidationError{PacketID: p.ID, Reason: fmt.Sprintf("arrival time must be non-negative, got %g", p.ArrivalTime)}
	case p.Priority < 0:
		return &ValidationError{PacketID: p.ID, Reason: fmt.Sprintf("priority must be non-negative, got %d", p.Priority)}
	case e.seen && p.ID <= e.lastID:
		return &ValidationError{PacketID: p.ID, Reason: fmt.Sprintf("id must increase, got %d after %d", p.ID, e.lastID)}
	case e.seen && p.ArrivalTime < e.lastArrival:
		return &ValidationError{PacketID: p.ID, Reason: fmt.Sprintf("arrival time must be non-decreasing, got %g after %g", p.ArrivalTime, e.lastArrival)}
	}
	e.seen = true
	e.lastID = p.ID
	e.lastArrival = p.ArrivalTime
	return nil
}
