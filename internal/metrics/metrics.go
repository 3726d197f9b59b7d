package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Counter: documentation cache lookups by result (hit, miss, error).
	DocCacheResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limelink_doc_cache_results_total",
			Help: "Documentation cache lookups by result.",
		},
		[]string{"result"},
	)

	// Histogram: remote documentation fetch latency in seconds.
	DocFetchSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "limelink_doc_fetch_seconds",
			Help:    "Latency of remote documentation fetches in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"kind", "outcome"},
	)

	// Counter: Limelink API requests by operation and status class.
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limelink_api_requests_total",
			Help: "Requests sent to the Limelink API.",
		},
		[]string{"operation", "status_class"},
	)

	// Counter: MCP tool invocations by tool and outcome.
	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limelink_tool_calls_total",
			Help: "MCP tool invocations by tool and outcome.",
		},
		[]string{"tool", "outcome"},
	)

	// Histogram: HTTP transport latency in seconds.
	HTTPLatencySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "limelink_http_latency_seconds",
			Help:    "HTTP request latency for the MCP transport in seconds.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"path", "method", "status_code"},
	)
)

// Register is called once in main() to register metrics.
func Register() {
	prometheus.MustRegister(
		DocCacheResultsTotal,
		DocFetchSeconds,
		APIRequestsTotal,
		ToolCallsTotal,
		HTTPLatencySeconds,
	)
}

// Handler exposes the /metrics endpoint for Prometheus to scrape.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StatusClass maps 404 to "4xx". Zero means no response was received.
func StatusClass(status int) string {
	if status <= 0 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}

// Middleware measures transport latency for each HTTP request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// capture status code
		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rec, r)

		HTTPLatencySeconds.
			WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rec.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
