package sim

import "container/heap"

// DelayHeap is a min-heap of DelayedPackets with deterministic ordering.
// Ordering: DeliverAt → Seq. The Seq tie-break makes equal-time pops
// follow enqueue order instead of arbitrary heap internals.
type DelayHeap struct {
	packets []DelayedPacket
}

// NewDelayHeap creates an empty delay heap.
func NewDelayHeap() *DelayHeap {
	h := &DelayHeap{packets: make([]DelayedPacket, 0)}
	heap.Init(h)
	return h
}

// Len implements heap.Interface.
func (h *DelayHeap) Len() int {
	return len(h.packets)
}

// Less implements heap.Interface: DeliverAt first, then Seq.
func (h *DelayHeap) Less(i, j int) bool {
	pi, pj := h.packets[i], h.packets[j]
	if pi.DeliverAt != pj.DeliverAt {
		return pi.DeliverAt < pj.DeliverAt
	}
	return pi.Seq < pj.Seq
}

// Swap implements heap.Interface.
func (h *DelayHeap) Swap(i, j int) {
	h.packets[i], h.packets[j] = h.packets[j], h.packets[i]
}

// Push implements heap.Interface.
func (h *DelayHeap) Push(x any) {
	h.packets = append(h.packets, x.(DelayedPacket))
}

// Pop implements heap.Interface.
func (h *DelayHeap) Pop() any {
	old := h.packets
	n := len(old)
	item := old[n-1]
	h.packets = old[0 : n-1]
	return item
}

// Schedule adds a packet to the heap.
func (h *DelayHeap) Schedule(p DelayedPacket) {
	heap.Push(h, p)
}

// PopNext removes and returns the packet with the smallest
// (DeliverAt, Seq). The second return is false when the heap is empty.
func (h *DelayHeap) PopNext() (DelayedPacket, bool) {
	if h.Len() == 0 {
		return DelayedPacket{}, false
	}
	return heap.Pop(h).(DelayedPacket), true
}

// Peek returns the next packet without removing it.
func (h *DelayHeap) Peek() (DelayedPacket, bool) {
	if h.Len() == 0 {
		return DelayedPacket{}, false
	}
	return h.packets[0], true
}
