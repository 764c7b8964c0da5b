package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// burstJitterStdDev is the Gaussian noise (seconds) added on top of
// BurstLatencyMean while a burst is active.
const burstJitterStdDev = 0.050

// ImpairmentSimulator injects latency, jitter, loss, and burst
// degradation into a packet stream, producing the dropped and
// out-of-order delivery patterns of a real V2X/cellular link.
//
// Packets enter via Enqueue with the caller's simulation clock and are
// held in a delay queue until a DrainReady call observes a clock past
// their delivery time. A later packet drawn a lower latency overtakes
// an earlier one, which is the whole point: downstream consumers must
// cope with out-of-sequence measurements.
//
// The simulator is driven by its owner's tick loop and has no internal
// synchronization; callers sharing one instance across goroutines must
// serialize access externally. The caller's clock must be
// non-decreasing across calls; the simulator does not correct an
// out-of-order clock.
type ImpairmentSimulator struct {
	config Config
	rng    *rand.Rand
	queue  *DelayHeap

	nextSeq uint64

	inBurst     bool
	burstEndsAt float64 // meaningful only while inBurst

	stats Stats
}

// NewImpairmentSimulator validates the config and builds a simulator
// drawing randomness from rng. Pass a PartitionedRNG subsystem stream
// for reproducible runs; a nil rng is a construction error.
func NewImpairmentSimulator(config Config, rng *rand.Rand) (*ImpairmentSimulator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid link config: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("rng must not be nil")
	}
	return &ImpairmentSimulator{
		config: config,
		rng:    rng,
		queue:  NewDelayHeap(),
	}, nil
}

// Config returns the immutable profile this simulator was built with.
func (s *ImpairmentSimulator) Config() Config {
	return s.config
}

// Enqueue submits a packet to the simulated link at simulation time now.
// The packet is either dropped (loss draw) or scheduled for delivery at
// now plus an injected latency; scheduled packets are always returned
// by some future DrainReady at or after their delivery time.
func (s *ImpairmentSimulator) Enqueue(payload []byte, topic string, now float64) EnqueueResult {
	s.stats.Sent++

	if s.rng.Float64() < s.config.LossRate {
		s.stats.Dropped++
		logrus.Debugf("link: dropped packet on %q at %.3fs", topic, now)
		return EnqueueResult{Dropped: true}
	}

	var latency float64
	if s.updateBurst(now) {
		latency = s.config.BurstLatencyMean + s.rng.NormFloat64()*burstJitterStdDev
		if latency < 0 {
			latency = 0
		}
	} else {
		latency = s.config.MinLatency + s.rng.Float64()*(s.config.MaxLatency-s.config.MinLatency)
	}

	deliverAt := now + latency
	s.stats.TotalDelay += latency

	seq := s.nextSeq
	s.nextSeq++
	s.queue.Schedule(DelayedPacket{
		DeliverAt: deliverAt,
		Seq:       seq,
		Payload:   payload,
		Topic:     topic,
	})

	return EnqueueResult{Seq: seq, DeliverAt: deliverAt}
}

// updateBurst advances the burst state machine and reports whether a
// burst is active at now. Entry is probabilistic, gated once per
// enqueue while not bursting; exit is time-gated and evaluated lazily.
// An enqueue that observes an expired window takes the entry draw in
// the same call, so a fresh burst can open anchored at now.
func (s *ImpairmentSimulator) updateBurst(now float64) bool {
	if s.inBurst {
		if now <= s.burstEndsAt {
			return true
		}
		s.inBurst = false
		logrus.Debugf("link: burst ended at %.3fs", now)
	}

	if s.rng.Float64() < s.config.BurstProbability {
		s.inBurst = true
		s.burstEndsAt = now + s.config.BurstDuration
		logrus.Debugf("link: burst started at %.3fs, ends at %.3fs", now, s.burstEndsAt)
		return true
	}

	return false
}

// DrainReady removes and returns every queued packet whose delivery
// time has been reached, ordered by (DeliverAt, Seq). Packets still in
// flight stay queued; a second drain at the same clock returns nothing.
func (s *ImpairmentSimulator) DrainReady(now float64) []DelayedPacket {
	// A burst can expire between enqueues; observe that here too so
	// Bursting stays accurate during enqueue-free stretches.
	if s.inBurst && now > s.burstEndsAt {
		s.inBurst = false
		logrus.Debugf("link: burst ended at %.3fs", now)
	}

	var ready []DelayedPacket
	for {
		next, ok := s.queue.Peek()
		if !ok || next.DeliverAt > now {
			break
		}
		popped, _ := s.queue.PopNext()
		s.stats.Delivered++
		ready = append(ready, popped)
	}
	return ready
}

// Stats returns a snapshot of the delivery counters. No side effects.
func (s *ImpairmentSimulator) Stats() Stats {
	return s.stats
}

// QueueLen returns the number of packets currently in flight.
func (s *ImpairmentSimulator) QueueLen() int {
	return s.queue.Len()
}

// Bursting reports whether the burst window was active the last time
// the state machine was evaluated.
func (s *ImpairmentSimulator) Bursting() bool {
	return s.inBurst
}
