package trace

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// RunTrace collects delivery and drop records during one simulation run.
type RunTrace struct {
	RunID      string
	Deliveries []DeliveryRecord
	Drops      []DropRecord

	maxDeliveredSeq uint64
	anyDelivered    bool
}

// NewRunTrace creates a RunTrace with a fresh run identifier.
func NewRunTrace() *RunTrace {
	return &RunTrace{
		RunID:      uuid.NewString(),
		Deliveries: make([]DeliveryRecord, 0),
		Drops:      make([]DropRecord, 0),
	}
}

// RecordDelivery appends a delivery record, marking it as reordered
// when a packet enqueued later has already been delivered.
func (rt *RunTrace) RecordDelivery(record DeliveryRecord) {
	if rt.anyDelivered && record.Seq < rt.maxDeliveredSeq {
		record.Reordered = true
	}
	if !rt.anyDelivered || record.Seq > rt.maxDeliveredSeq {
		rt.maxDeliveredSeq = record.Seq
	}
	rt.anyDelivered = true
	rt.Deliveries = append(rt.Deliveries, record)
}

// RecordDrop appends a drop record.
func (rt *RunTrace) RecordDrop(record DropRecord) {
	rt.Drops = append(rt.Drops, record)
}

// WriteJSONL streams every delivery record to w, one JSON object per
// line, in delivery order.
func (rt *RunTrace) WriteJSONL(w io.Writer) error {
	enc := json.NewEncoder(w)
	for i := range rt.Deliveries {
		if err := enc.Encode(&rt.Deliveries[i]); err != nil {
			return fmt.Errorf("encoding delivery record %d: %w", i, err)
		}
	}
	return nil
}
