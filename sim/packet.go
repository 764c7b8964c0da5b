package sim

// DelayedPacket is a payload scheduled for future delivery.
// It lives in the delay queue from Enqueue until DrainReady pops it;
// the simulator keeps no reference afterwards.
type DelayedPacket struct {
	DeliverAt float64 // simulation time at which the packet becomes deliverable
	Seq       uint64  // enqueue order, tie-breaker for equal DeliverAt
	Payload   []byte
	Topic     string
}

// EnqueueResult reports the outcome of a single Enqueue call.
// A dropped packet was never scheduled and will never be delivered.
type EnqueueResult struct {
	Dropped   bool
	Seq       uint64  // assigned enqueue sequence, meaningful only when Dropped is false
	DeliverAt float64 // meaningful only when Dropped is false
}
