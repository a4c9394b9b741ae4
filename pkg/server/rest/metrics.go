package rest

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	solvesTotal         *prometheus.CounterVec
	solveFallbacks      *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patrolx",
			Name:      "http_requests_total",
			Help:      "number of http requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "patrolx",
			Name:      "http_request_duration_seconds",
			Help:      "duration of http requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		solvesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patrolx",
			Name:      "route_solves_total",
			Help:      "number of solved routes per algorithm",
		}, []string{"algorithm"}),
		solveFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patrolx",
			Name:      "route_solve_fallbacks_total",
			Help:      "number of route solves that used an approximation fallback",
		}, []string{"algorithm"}),
	}
	reg.MustRegister(m.httpRequestsTotal, m.httpRequestDuration, m.solvesTotal, m.solveFallbacks)
	return m
}

// ObserveSolve records one finished solve and whether it fell back to the
// approximate strategy.
func (m *Metrics) ObserveSolve(algorithm string, fallback bool) {
	if m == nil {
		return
	}
	m.solvesTotal.WithLabelValues(algorithm).Inc()
	if fallback {
		m.solveFallbacks.WithLabelValues(algorithm).Inc()
	}
}

func PromeHttpMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			m.httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
			m.httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		})
	}
}
