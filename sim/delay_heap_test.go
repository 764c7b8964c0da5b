package sim

import "testing"

func TestDelayHeap_PopsInDeliveryOrder(t *testing.T) {
	// GIVEN packets scheduled out of delivery order
	h := NewDelayHeap()
	h.Schedule(DelayedPacket{DeliverAt: 0.3, Seq: 0})
	h.Schedule(DelayedPacket{DeliverAt: 0.1, Seq: 1})
	h.Schedule(DelayedPacket{DeliverAt: 0.2, Seq: 2})

	// WHEN popping everything
	var got []float64
	for {
		p, ok := h.PopNext()
		if !ok {
			break
		}
		got = append(got, p.DeliverAt)
	}

	// THEN pops come out by ascending DeliverAt
	want := []float64{0.1, 0.2, 0.3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pop %d: got DeliverAt %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDelayHeap_TieBrokenBySeq(t *testing.T) {
	// GIVEN three packets with identical delivery times, scheduled in
	// reverse sequence order
	h := NewDelayHeap()
	h.Schedule(DelayedPacket{DeliverAt: 0.5, Seq: 2})
	h.Schedule(DelayedPacket{DeliverAt: 0.5, Seq: 0})
	h.Schedule(DelayedPacket{DeliverAt: 0.5, Seq: 1})

	// THEN equal-time pops follow enqueue order, not heap internals
	for wantSeq := uint64(0); wantSeq < 3; wantSeq++ {
		p, ok := h.PopNext()
		if !ok {
			t.Fatalf("heap empty at seq %d", wantSeq)
		}
		if p.Seq != wantSeq {
			t.Errorf("got Seq %d, want %d", p.Seq, wantSeq)
		}
	}
}

func TestDelayHeap_PeekDoesNotRemove(t *testing.T) {
	h := NewDelayHeap()
	h.Schedule(DelayedPacket{DeliverAt: 1.0, Seq: 0})

	p, ok := h.Peek()
	if !ok || p.DeliverAt != 1.0 {
		t.Fatalf("Peek: got (%v, %v), want packet at 1.0", p, ok)
	}
	if h.Len() != 1 {
		t.Errorf("Peek changed heap length to %d", h.Len())
	}
}

func TestDelayHeap_EmptyPops(t *testing.T) {
	h := NewDelayHeap()
	if _, ok := h.PopNext(); ok {
		t.Error("PopNext on empty heap reported ok")
	}
	if _, ok := h.Peek(); ok {
		t.Error("Peek on empty heap reported ok")
	}
}
