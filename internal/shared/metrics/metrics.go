package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tejai"

var (
	registry = prometheus.NewRegistry()

	analysisStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_started_total",
		Help:      "Total analyses started",
	}, []string{"feature"})

	analysisCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_completed_total",
		Help:      "Total analyses completed",
	}, []string{"feature"})

	analysisFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_failed_total",
		Help:      "Total analyses failed, by error kind",
	}, []string{"feature", "kind"})

	analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Generative endpoint round trip in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"feature"})

	libraryOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "library_operations_total",
		Help:      "Library persistence operations",
	}, []string{"op"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		analysisStarted,
		analysisCompleted,
		analysisFailed,
		analysisDuration,
		libraryOps,
	)
}

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted(feature string) {
	analysisStarted.WithLabelValues(feature).Inc()
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted(feature string) {
	analysisCompleted.WithLabelValues(feature).Inc()
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed(feature, kind string) {
	analysisFailed.WithLabelValues(feature, kind).Inc()
}

// ObserveAnalysisDuration records an analysis round trip.
func ObserveAnalysisDuration(feature string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	analysisDuration.WithLabelValues(feature).Observe(d.Seconds())
}

// IncLibraryOp counts a library list/save/delete.
func IncLibraryOp(op string) {
	libraryOps.WithLabelValues(op).Inc()
}

// Registry exposes the private registry, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
