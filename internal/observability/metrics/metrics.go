// Package metrics exposes painel's Prometheus collectors: backend calls made
// through the API client and the HTTP requests painel itself serves.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Registry owns a private Prometheus registry and the collectors registered on it.
type Registry struct {
	reg *prometheus.Registry

	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	backendInFlight prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge
}

// NewRegistry builds the collectors under namespace. Go runtime and process
// collectors are added when runtime is set.
func NewRegistry(namespace string, runtime bool) *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Backend API calls by resource and outcome.",
		}, []string{"method", "resource", "status", "result", "error_class"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend API calls.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 11), // 10ms to ~10s
		}, []string{"method", "resource"}),
		backendInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "inflight_requests",
			Help:      "Backend API calls not yet finished.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served by route group and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests served.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "route"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "HTTP requests being served.",
		}),
	}

	r.reg.MustRegister(
		r.backendRequests, r.backendDuration, r.backendInFlight,
		r.httpRequests, r.httpDuration, r.httpInFlight,
	)
	if runtime {
		r.reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Backend returns an apiclient observer recording into this registry.
func (r *Registry) Backend() *BackendObserver {
	return &BackendObserver{registry: r}
}

// Instrument records every request except scrapes of skipPath.
func (r *Registry) Instrument(skipPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Path == skipPath {
				next.ServeHTTP(w, req)
				return
			}

			r.httpInFlight.Inc()
			defer r.httpInFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, req)

			route := Route(req.URL.Path)
			r.httpRequests.WithLabelValues(req.Method, route, strconv.Itoa(rec.status)).Inc()
			r.httpDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }

// routeGroups are the first path segments painel serves.
var routeGroups = map[string]bool{
	"app": true, "login": true, "logout": true, "static": true, "healthz": true,
}

// Route is the first path segment when painel serves it and "other" for
// anything else, so unknown URLs cannot grow the label set.
func Route(path string) string {
	p := strings.Trim(path, "/")
	if p == "" {
		return "root"
	}
	first, _, _ := strings.Cut(p, "/")
	if !routeGroups[first] {
		return "other"
	}
	return first
}
