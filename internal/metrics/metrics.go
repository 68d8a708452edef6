// Package metrics exposes Prometheus collectors for the HTTP API and the
// tracked state.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

const namespace = "kanso"

type Metrics struct {
	gatherer prometheus.Gatherer

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	ledgerSize prometheus.Gauge
	habits     prometheus.Gauge
	tasks      prometheus.Gauge
	books      prometheus.Gauge
	changes    *prometheus.CounterVec
}

// New registers every collector on reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ledgerSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_entries",
			Help:      "Daily snapshots currently kept in the history ledger.",
		}),
		habits: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "habits",
			Help:      "Tracked habits.",
		}),
		tasks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks",
			Help:      "Planned tasks.",
		}),
		books: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "books",
			Help:      "Reading items.",
		}),
		changes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes_total",
			Help:      "Committed state mutations by document.",
		}, []string{"document"}),
	}
}

// Middleware records one sample per request. Unmatched routes share a
// single label to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.requests.WithLabelValues(c.Request.Method, route, status).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

var documents = []struct {
	flag domain.Change
	name string
}{
	{domain.ChangeStats, "stats"},
	{domain.ChangeHabits, "habits"},
	{domain.ChangeTasks, "tasks"},
	{domain.ChangeBooks, "books"},
	{domain.ChangeReadingGoal, "reading_goal"},
	{domain.ChangePreferences, "preferences"},
	{domain.ChangeProfile, "profile"},
}

// ObserveState has the shape of a state change hook.
func (m *Metrics) ObserveState(st domain.AppState, change domain.Change) {
	m.ledgerSize.Set(float64(len(st.Stats.History)))
	m.habits.Set(float64(len(st.Habits)))
	m.tasks.Set(float64(len(st.Tasks)))
	m.books.Set(float64(len(st.Books)))

	for _, d := range documents {
		if change.Has(d.flag) {
			m.changes.WithLabelValues(d.name).Inc()
		}
	}
}
