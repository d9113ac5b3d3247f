// Defines the Packet struct that models an individual packet in the simulation.
// Tracks arrival, size, priority, and service/drop timestamps.

package sim

import (
	"fmt"
)

// PacketState represents the lifecycle state of a packet.
type PacketState string

const (
	StateQueued    PacketState = "queued"
	StateCompleted PacketState = "completed"
	StateDropped   PacketState = "dropped"
	StateRejected  PacketState = "rejected" // failed input validation, never admitted
)

// Packet models a single packet's lifecycle in the simulation.
// The identity and arrival fields are immutable once generated; the
// outcome fields are stamped exactly once by the engine or the
// discipline's drop policy and are immutable thereafter.
type Packet struct {
	ID     int // Unique sequence number, strictly increasing across the input
	FlowID int // Grouping key, assigned by the discipline's classifier at admission

	ArrivalTime float64 // Simulated arrival time (seconds), non-decreasing across the input
	Size        int     // Packet size in bytes
	ServiceTime float64 // Time the server is occupied once the packet is selected
	Priority    int     // Priority level; higher value = higher priority

	State      PacketState
	StartTime  float64 // Time service began (completed packets only)
	FinishTime float64 // Time service finished (completed packets only)
	Dropped    bool
	DropTime   float64
	DropReason DropReason
}

// Latency returns finish - arrival. Only meaningful for completed packets.
func (p *Packet) Latency() float64 {
	return p.FinishTime - p.ArrivalTime
}

// WaitingTime returns start - arrival. Only meaningful for completed packets.
func (p *Packet) WaitingTime() float64 {
	return p.StartTime - p.ArrivalTime
}

func (p Packet) String() string {
	return fmt.Sprintf("Packet: (ID: %d, Flow: %d, State: %s, ArrivalTime: %.3f)", p.ID, p.FlowID, p.State, p.ArrivalTime)
}

// ClonePackets deep-copies a packet sequence with all outcome fields cleared.
// The compare runner uses this to feed an identical input to every discipline.
func ClonePackets(packets []*Packet) []*Packet {
	clones := make([]*Packet, len(packets))
	for i, p := range packets {
		c := *p
		c.FlowID = 0
		c.State = ""
		c.StartTime = 0
		c.FinishTime = 0
		c.Dropped = false
		c.DropTime = 0
		c.DropReason = DropReasonNone
		clones[i] = &c
	}
	return clones
}
