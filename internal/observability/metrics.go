package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// The registry is in-process only; the guest has no network surface, so
// the embedding process decides if and how these ever leave the VM.
var (
	registerOnce sync.Once

	clientCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hcall",
			Subsystem: "client",
			Name:      "calls_total",
			Help:      "Total host-call attempts.",
		},
		[]string{"tool", "outcome"},
	)
	clientDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hcall",
			Subsystem: "client",
			Name:      "call_duration_seconds",
			Help:      "Host-call round-trip duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"tool", "outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(clientCalls, clientDuration)
	})
}

func RecordCall(tool, outcome string, duration time.Duration) {
	RegisterMetrics()
	clientCalls.WithLabelValues(tool, outcome).Inc()
	clientDuration.WithLabelValues(tool, outcome).Observe(duration.Seconds())
}
