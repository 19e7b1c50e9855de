package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bundleguard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bundleguard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bundleguard",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Spike analysis metrics
	alertsDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bundleguard",
			Subsystem: "spike",
			Name:      "alerts_detected_total",
			Help:      "Total number of alerts produced by spike analysis",
		},
		[]string{"type", "severity"},
	)

	analysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bundleguard",
			Subsystem: "spike",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of one spike analysis run in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	analysisRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bundleguard",
			Subsystem: "spike",
			Name:      "analysis_runs_total",
			Help:      "Total number of spike analysis runs",
		},
		[]string{"trigger"},
	)

	// Ingestion metrics
	usageRecordsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bundleguard",
			Subsystem: "usage",
			Name:      "records_ingested_total",
			Help:      "Total number of usage records ingested",
		},
	)

	notificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bundleguard",
			Subsystem: "notify",
			Name:      "sent_total",
			Help:      "Total number of spike notifications delivered",
		},
		[]string{"severity"},
	)
)

// RecordAlert increments the detected-alert counter.
func RecordAlert(alertType, severity string) {
	alertsDetectedTotal.WithLabelValues(alertType, severity).Inc()
}

// RecordAnalysis records one analysis run and its duration. Trigger is
// "api", "scanner" or "manual".
func RecordAnalysis(trigger string, duration time.Duration) {
	analysisRunsTotal.WithLabelValues(trigger).Inc()
	analysisDuration.Observe(duration.Seconds())
}

// RecordIngestedRecords adds to the ingestion counter.
func RecordIngestedRecords(n int) {
	usageRecordsIngested.Add(float64(n))
}

// RecordNotification increments the notification counter.
func RecordNotification(severity string) {
	notificationsSent.WithLabelValues(severity).Inc()
}

// Handler returns the prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware instruments HTTP requests with count, duration and in-flight
// metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.status)
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
