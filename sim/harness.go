package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/impair-sim/impair-sim/sim/trace"
	"github.com/impair-sim/impair-sim/sim/traffic"
)

// Observer receives a state snapshot after every harness tick.
// Implementations must not mutate the simulator; the monitoring layer
// uses this to publish gauges without the sim package knowing about it.
type Observer interface {
	ObserveTick(now float64, stats Stats, queueLen int, bursting bool)
}

// progressLogInterval is how many ticks pass between Info-level
// progress lines during a run.
const progressLogInterval = 100

// Harness drives one impaired link with synthetic traffic, tick by
// tick, recording every drop and delivery. It plays both external
// roles of the simulator's contract: the producer (one Enqueue batch
// per tick) and the sink (one DrainReady per tick).
type Harness struct {
	link *ImpairmentSimulator
	gen  *traffic.Generator

	rng *PartitionedRNG

	trace    *trace.RunTrace
	observer Observer // may be nil

	// in-flight packets by sequence, for filling delivery records
	pending map[uint64]pendingPacket

	clock float64
}

type pendingPacket struct {
	enqueuedAt float64
	bytes      int
}

// NewHarness builds a harness for the given link profile and traffic
// shape. All randomness derives from key, so the same key, config, and
// spec reproduce the exact same delivery schedule.
func NewHarness(config Config, spec traffic.Spec, key SimulationKey, observer Observer) (*Harness, error) {
	rng := NewPartitionedRNG(key)
	link, err := NewImpairmentSimulator(config, rng.ForSubsystem(SubsystemLink))
	if err != nil {
		return nil, err
	}
	gen, err := traffic.NewGenerator(spec)
	if err != nil {
		return nil, err
	}
	return &Harness{
		link:     link,
		gen:      gen,
		rng:      rng,
		trace:    trace.NewRunTrace(),
		observer: observer,
		pending:  make(map[uint64]pendingPacket),
	}, nil
}

// Link exposes the simulator under test, mainly for introspection.
func (h *Harness) Link() *ImpairmentSimulator {
	return h.link
}

// Trace returns the trace recorded so far.
func (h *Harness) Trace() *trace.RunTrace {
	return h.trace
}

// Run advances the simulation clock by tickInterval seconds per tick,
// enqueueing one generated batch and draining ready packets each tick.
// Pure simulation time: no sleeping, no wall clock.
func (h *Harness) Run(ticks int, tickInterval float64) error {
	if ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", ticks)
	}
	if tickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %f", tickInterval)
	}

	rng := h.rng.ForSubsystem(SubsystemTraffic)
	for tick := 0; tick < ticks; tick++ {
		h.clock = float64(tick) * tickInterval

		for _, p := range h.gen.Tick(rng) {
			h.enqueue(p)
		}
		h.drain(h.clock)

		if h.observer != nil {
			h.observer.ObserveTick(h.clock, h.link.Stats(), h.link.QueueLen(), h.link.Bursting())
		}
		if tick > 0 && tick%progressLogInterval == 0 {
			s := h.link.Stats()
			logrus.Infof("tick %d (t=%.2fs): sent=%d dropped=%d delivered=%d queued=%d",
				tick, h.clock, s.Sent, s.Dropped, s.Delivered, h.link.QueueLen())
		}
	}
	return nil
}

// Flush drains every packet still in flight after Run, recording each
// delivery at its own scheduled time. The simulated clock jumps past
// the last delivery; call this only once the run is over.
func (h *Harness) Flush() {
	for _, p := range h.link.DrainReady(math.Inf(1)) {
		h.record(p, p.DeliverAt)
	}
}

func (h *Harness) enqueue(p traffic.Packet) {
	result := h.link.Enqueue(p.Payload, p.Topic, h.clock)
	if result.Dropped {
		h.trace.RecordDrop(trace.DropRecord{
			Topic:     p.Topic,
			Bytes:     len(p.Payload),
			DroppedAt: h.clock,
		})
		return
	}
	h.pending[result.Seq] = pendingPacket{enqueuedAt: h.clock, bytes: len(p.Payload)}
}

func (h *Harness) drain(now float64) {
	for _, p := range h.link.DrainReady(now) {
		h.record(p, now)
	}
}

func (h *Harness) record(p DelayedPacket, deliveredAt float64) {
	info := h.pending[p.Seq]
	delete(h.pending, p.Seq)
	h.trace.RecordDelivery(trace.DeliveryRecord{
		Seq:         p.Seq,
		Topic:       p.Topic,
		Bytes:       info.bytes,
		EnqueuedAt:  info.enqueuedAt,
		DeliveredAt: deliveredAt,
		Delay:       deliveredAt - info.enqueuedAt,
	})
}
