package trace

import (
	"github.com/montanaflynn/stats"
)

// Summary aggregates statistics from a RunTrace.
type Summary struct {
	RunID          string
	Delivered      int
	Dropped        int
	ReorderedCount int
	ReorderedRatio float64

	MeanDelay float64 // seconds
	P50Delay  float64
	P95Delay  float64
	P99Delay  float64
	MaxDelay  float64
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RunTrace) *Summary {
	summary := &Summary{}
	if rt == nil {
		return summary
	}

	summary.RunID = rt.RunID
	summary.Delivered = len(rt.Deliveries)
	summary.Dropped = len(rt.Drops)

	if len(rt.Deliveries) == 0 {
		return summary
	}

	delays := make(stats.Float64Data, 0, len(rt.Deliveries))
	for _, d := range rt.Deliveries {
		delays = append(delays, d.Delay)
		if d.Reordered {
			summary.ReorderedCount++
		}
	}
	summary.ReorderedRatio = float64(summary.ReorderedCount) / float64(summary.Delivered)

	// Percentile errors only occur on empty input, which is excluded above.
	summary.MeanDelay, _ = stats.Mean(delays)
	summary.P50Delay, _ = stats.Percentile(delays, 50)
	summary.P95Delay, _ = stats.Percentile(delays, 95)
	summary.P99Delay, _ = stats.Percentile(delays, 99)
	summary.MaxDelay, _ = stats.Max(delays)

	return summary
}
