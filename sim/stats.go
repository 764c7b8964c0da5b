package sim

import "fmt"

// Stats aggregates delivery counters for one simulated link.
// All counters are monotonically non-decreasing; at any point
// Sent == Dropped + Delivered + packets still queued.
type Stats struct {
	Sent       uint64  // total Enqueue calls
	Dropped    uint64  // packets lost before scheduling
	Delivered  uint64  // packets returned by DrainReady
	TotalDelay float64 // sum of injected latencies (seconds), accumulated at enqueue
}

// Print displays aggregated link statistics at the end of a run.
func (s Stats) Print() {
	fmt.Println("=== Link Impairment Statistics ===")
	fmt.Printf("Packets Sent      : %d\n", s.Sent)
	if s.Sent > 0 {
		fmt.Printf("Packets Dropped   : %d (%.1f%%)\n", s.Dropped, 100*float64(s.Dropped)/float64(s.Sent))
	} else {
		fmt.Printf("Packets Dropped   : %d\n", s.Dropped)
	}
	fmt.Printf("Packets Delivered : %d\n", s.Delivered)
	if s.Delivered > 0 {
		fmt.Printf("Average Delay     : %.1f ms\n", 1000*s.TotalDelay/float64(s.Delivered))
	}
}
