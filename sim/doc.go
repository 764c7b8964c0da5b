// Package sim provides the discrete-event link impairment simulator.
//
// # Reading Guide
//
// Start with these three files to understand the core:
//   - impair.go: ImpairmentSimulator (loss draw, burst state machine, latency injection)
//   - delay_heap.go: the (DeliverAt, Seq)-ordered delay queue
//   - harness.go: the tick loop that drives a simulator against synthetic traffic
//
// # Architecture
//
// The sim package holds the simulator and its deterministic RNG;
// supporting concerns live in sub-packages:
//   - sim/traffic/: synthetic telemetry generation (payload size samplers)
//   - sim/trace/: per-delivery trace recording and summary statistics
//
// "Delay" here is purely a data-plane timestamp comparison: nothing
// blocks, nothing wakes up. The owner's tick loop calls Enqueue and
// DrainReady with its own simulation clock, and reordering falls out of
// packets drawing different latencies.
package sim
