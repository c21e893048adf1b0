// Package metrics exposes Prometheus instrumentation for the scoring API:
// a standalone metrics HTTP server and the per-call counters and latency
// histograms recorded by the method handler.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	methodCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_api_method_calls_total",
			Help: "Total number of dispatched method calls",
		},
		[]string{"method", "code"},
	)

	methodCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scoring_api_method_call_duration_seconds",
			Help:    "Method call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// ObserveCall records the outcome of one dispatched method call.
func ObserveCall(method string, code int, elapsed time.Duration) {
	methodCallsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	methodCallDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// MetricsServer serves the Prometheus scrape endpoint on its own listener,
// separate from the API server.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the given listen address. The name is
// kept for the process label on the landing page; an empty address yields a
// server that is never started.
func New(name, addr string) (*MetricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><h1>` + name + `</h1><a href="/metrics">metrics</a></body></html>`))
	})

	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// ListenAndServe blocks serving the scrape endpoint until Shutdown.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
