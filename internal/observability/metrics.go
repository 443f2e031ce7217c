package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mutationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kanso",
		Subsystem: "store",
		Name:      "mutations_total",
		Help:      "Number of committed tracking store mutations, labeled by operation.",
	}, []string{"operation"})

	snapshotSavesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kanso",
		Subsystem: "persistence",
		Name:      "snapshot_saves_total",
		Help:      "Number of snapshot writes, labeled by result.",
	}, []string{"result"})

	snapshotSaveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "kanso",
		Subsystem: "persistence",
		Name:      "snapshot_save_duration_seconds",
		Help:      "Time spent exporting and writing a snapshot.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	lastSavedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kanso",
		Subsystem: "persistence",
		Name:      "last_snapshot_saved_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful snapshot write.",
	})

	httpRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kanso",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests, labeled by method, route and status.",
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(mutationsCounter, snapshotSavesCounter, snapshotSaveDuration, lastSavedGauge, httpRequestsCounter)
}

func RecordMutation(operation string) {
	mutationsCounter.WithLabelValues(operation).Inc()
}

// RecordSnapshotSave tracks one snapshot write and moves the watermark on success.
func RecordSnapshotSave(started time.Time, err error) {
	snapshotSaveDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		snapshotSavesCounter.WithLabelValues("error").Inc()
		return
	}
	snapshotSavesCounter.WithLabelValues("ok").Inc()
	lastSavedGauge.Set(float64(time.Now().Unix()))
}

func RecordHTTPRequest(method, route, status string) {
	httpRequestsCounter.WithLabelValues(method, route, status).Inc()
}
