// Package monitoring publishes link impairment metrics to Prometheus.
// It observes the harness from outside; the simulator itself stays
// free of any I/O.
package monitoring

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/impair-sim/impair-sim/sim"
)

var (
	PacketsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "link_packets_sent_total",
			Help: "Total packets offered to the impaired link",
		},
		[]string{"link"},
	)

	PacketsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "link_packets_dropped_total",
			Help: "Total packets lost before scheduling",
		},
		[]string{"link"},
	)

	PacketsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "link_packets_delivered_total",
			Help: "Total packets delivered after their injected delay",
		},
		[]string{"link"},
	)

	QueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "link_queue_depth",
			Help: "Packets currently in flight on the link",
		},
		[]string{"link"},
	)

	DelaySeconds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "link_delay_seconds_sum",
			Help: "Accumulated injected delay in seconds",
		},
		[]string{"link"},
	)

	BurstActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "link_burst_active",
			Help: "1 while the link is in a latency burst, 0 otherwise",
		},
		[]string{"link"},
	)
)

func init() {
	prometheus.MustRegister(PacketsSent, PacketsDropped, PacketsDelivered, QueueDepth, DelaySeconds, BurstActive)
}

// LinkObserver implements sim.Observer for one named link, diffing
// counter snapshots into Prometheus counters after each tick.
type LinkObserver struct {
	name string
	last sim.Stats
}

// NewLinkObserver creates an observer publishing under the given link label.
func NewLinkObserver(name string) *LinkObserver {
	return &LinkObserver{name: name}
}

// ObserveTick implements sim.Observer.
func (o *LinkObserver) ObserveTick(now float64, stats sim.Stats, queueLen int, bursting bool) {
	PacketsSent.WithLabelValues(o.name).Add(float64(stats.Sent - o.last.Sent))
	PacketsDropped.WithLabelValues(o.name).Add(float64(stats.Dropped - o.last.Dropped))
	PacketsDelivered.WithLabelValues(o.name).Add(float64(stats.Delivered - o.last.Delivered))
	DelaySeconds.WithLabelValues(o.name).Add(stats.TotalDelay - o.last.TotalDelay)
	QueueDepth.WithLabelValues(o.name).Set(float64(queueLen))
	if bursting {
		BurstActive.WithLabelValues(o.name).Set(1)
	} else {
		BurstActive.WithLabelValues(o.name).Set(0)
	}
	o.last = stats
}

// Serve exposes /metrics on addr in a background goroutine.
func Serve(addr string) {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, router); err != nil {
			logrus.Errorf("metrics server stopped: %v", err)
		}
	}()
	logrus.Infof("serving Prometheus metrics on %s/metrics", addr)
}
