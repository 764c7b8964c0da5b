// Package trace provides per-delivery trace recording for link
// impairment runs. It stores pure data types and has no dependency on
// the simulator or harness.
package trace

// DeliveryRecord captures one packet delivered by the impaired link.
type DeliveryRecord struct {
	Seq         uint64  `json:"seq"`          // enqueue order on the link
	Topic       string  `json:"topic"`
	Bytes       int     `json:"bytes"`        // payload size
	EnqueuedAt  float64 `json:"enqueued_at"`  // simulation time of enqueue
	DeliveredAt float64 `json:"delivered_at"` // simulation time of drain
	Delay       float64 `json:"delay"`        // DeliveredAt - EnqueuedAt
	Reordered   bool    `json:"reordered"`    // delivered after a higher-Seq packet
}

// DropRecord captures one packet lost on the link.
type DropRecord struct {
	Topic     string  `json:"topic"`
	Bytes     int     `json:"bytes"`
	DroppedAt float64 `json:"dropped_at"`
}
