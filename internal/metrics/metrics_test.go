package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/metrics"
)

func family(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return nil
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/habits/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/habits/a", "/habits/b", "/missing"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		r.ServeHTTP(w, req)
	}

	requests := family(t, reg, "kanso_http_requests_total")
	counts := map[string]float64{}
	for _, metric := range requests.GetMetric() {
		labels := map[string]string{}
		for _, l := range metric.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		counts[labels["route"]+" "+labels["status"]] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, 2.0, counts["/habits/:id 200"], "path params collapse into the route template")
	assert.Equal(t, 1.0, counts["unmatched 404"])

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kanso_http_request_duration_seconds")
}

func TestObserveState(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	st := domain.DefaultAppState()
	st.Stats.History = domain.Ledger{{Date: "2024-06-01"}, {Date: "2024-06-02"}}
	st.Habits = []domain.Habit{{ID: "h1", Name: "Walk"}}

	m.ObserveState(*st, domain.ChangeStats|domain.ChangeHabits)
	m.ObserveState(*st, domain.ChangeHabits)

	assert.Equal(t, 2.0, family(t, reg, "kanso_ledger_entries").GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 1.0, family(t, reg, "kanso_habits").GetMetric()[0].GetGauge().GetValue())

	changes := map[string]float64{}
	for _, metric := range family(t, reg, "kanso_state_changes_total").GetMetric() {
		changes[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"stats": 1, "habits": 2}, changes)
}
