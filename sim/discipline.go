package sim

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Discipline is the queueing strategy contract shared by all variants.
// A discipline owns every packet it has admitted until the packet is
// selected for service or dropped. All methods are called from a single
// engine goroutine; implementations hold no locks and share no state
// across instances.
type Discipline interface {
	// Name returns the discipline's registered name.
	Name() string

	// Admit offers an arriving packet, in arrival-time order. It returns
	// accepted=false when the packet was rejected by the drop policy (the
	// packet is stamped with its drop outcome before returning). victim is
	// non-nil only for eviction policies: a previously-accepted packet
	// that was discarded, already stamped, to make room for the arrival.
	Admit(p *Packet) (accepted bool, victim *Packet)

	// SelectNext removes and returns the next packet to serve per the
	// discipline's ordering rule, or nil when nothing is queued.
	// Deterministic given identical history.
	SelectNext() *Packet

	// IsEmpty reports whether no packets are queued.
	IsEmpty() bool

	// Occupancy returns the total number of queued packets.
	Occupancy() int

	// OnServiceComplete updates per-flow bookkeeping after p finishes
	// service. FCFS, Priority and Round-Robin treat it as a no-op.
	OnServiceComplete(p *Packet)
}

// DisciplineConfig groups per-discipline-instance knobs.
type DisciplineConfig struct {
	// Capacity is the buffer size in packets; 0 or negative means
	// unbounded (never drop).
	Capacity int

	// Classifier derives a packet's flow id. nil defaults to
	// PriorityClassifier.
	Classifier FlowClassifier

	// NumQueues is the number of round-robin sub-queues (Round-Robin
	// only; 0 defaults to 3).
	NumQueues int
}

// full reports whether an occupancy has reached the configured capacity.
func (c DisciplineConfig) full(occupancy int) bool {
	return c.Capacity > 0 && occupancy >= c.Capacity
}

func (c DisciplineConfig) classify(p *Packet) int {
	if c.Classifier == nil {
		return PriorityClassifier(p)
	}
	return c.Classifier(p)
}

// validDisciplines are the registered discipline names, in the order the
// compare command runs them.
var validDisciplines = []string{"fcfs", "priority", "round-robin", "fair-queue", "las"}

// IsValidDiscipline reports whether name refers to a registered discipline.
// The empty string is valid and defaults to FCFS.
func IsValidDiscipline(name string) bool {
	return name == "" || slices.Contains(validDisciplines, name)
}

// ValidDisciplines returns the registered discipline names.
func ValidDisciplines() []string {
	return slices.Clone(validDisciplines)
}

// NewDiscipline creates a Discipline by name.
// Valid names are listed in validDisciplines; the empty string defaults to
// FCFS (for CLI flag default compatibility). Panics on unrecognized names.
func NewDiscipline(name string, cfg DisciplineConfig) Discipline {
	if !IsValidDiscipline(name) {
		panic(fmt.Sprintf("unknown discipline %q; valid disciplines: %v", name, validDisciplines))
	}
	switch name {
	case "", "fcfs":
		return NewFCFS(cfg)
	case "priority":
		return NewPriority(cfg)
	case "round-robin":
		return NewRoundRobin(cfg)
	case "fair-queue":
		return NewFairQueue(cfg)
	case "las":
		return NewLAS(cfg)
	default:
		panic(fmt.Sprintf("unhandled discipline %q", name))
	}
}
