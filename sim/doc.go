// Package sim provides the core discrete-event simulation for comparing
// packet-scheduling disciplines on a single shared link.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - packet.go: Packet lifecycle (queued → completed/dropped) and timestamps
//   - discipline.go: the Discipline contract shared by all five strategies
//   - engine.go: the run loop that admits arrivals and serves one packet at a time
//
// # Architecture
//
// The five Discipline implementations each own their internal queue(s) and
// their admission/eviction logic:
//   - fcfs.go: single global queue, global tail drop
//   - priorityqueue.go: (priority, arrival) heap, global tail drop
//   - roundrobin.go: per-sub-queue rotation, global tail drop
//   - fairqueue.go: virtual-time fair queueing, per-flow fair drop
//   - las.go: least-attained-service, max-service eviction
//
// Traffic generation lives in sim/workload; the engine only requires a
// finite sequence of packets with non-decreasing arrival times.
//
// Everything is single-threaded and deterministic: the clock is a logical
// variable owned by the Engine, and a fresh Engine/Discipline pair per run
// guarantees identical timestamps and metrics on identical inputs.
package sim
