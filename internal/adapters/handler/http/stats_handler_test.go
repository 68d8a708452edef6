package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func TestStatsHandler(t *testing.T) {
	t.Run("Success: 200 with defaults", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("GET", "/api/v1/stats", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var stats domain.HealthStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, domain.DefaultEnergy, stats.Energy)
		assert.Equal(t, domain.SocialBatteryCharged, stats.SocialBattery)
	})

	t.Run("Success: partial update records today's snapshot", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("PUT", "/api/v1/stats", `{"water": 1.5, "energy": 7}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"water":1.5`)
		assert.Contains(t, w.Body.String(), `"energy":7`)

		history := api.state.View().Stats.History
		require.Len(t, history, 1)
		assert.Equal(t, "2024-06-12", history[0].Date)
		assert.Equal(t, 1.5, history[0].Water)
	})

	t.Run("Fail: 400 on invalid metric leaves state untouched", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("PUT", "/api/v1/stats", `{"water": 2, "energy": 11}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, api.state.View().Stats.Water)
	})

	t.Run("Fail: 400 on unknown social battery", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("PUT", "/api/v1/stats", `{"socialBattery": "drained"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Water delta never goes below zero", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("POST", "/api/v1/stats/water", `{"delta": 0.25}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"water":0.25}`, w.Body.String())

		w = api.do("POST", "/api/v1/stats/water", `{"delta": -1}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"water":0}`, w.Body.String())
	})

	t.Run("Sleep window crosses midnight", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("PUT", "/api/v1/stats/sleep-window", `{"bedTime": "23:30", "wakeTime": "07:00"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"sleep":7.5`)
	})

	t.Run("Fail: 400 on malformed clock time", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("PUT", "/api/v1/stats/sleep-window", `{"bedTime": "25:00", "wakeTime": "07:00"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Caffeine counts up", func(t *testing.T) {
		api := newTestAPI(t)

		api.do("POST", "/api/v1/stats/caffeine", "")
		w := api.do("POST", "/api/v1/stats/caffeine", "")

		assert.JSONEq(t, `{"caffeine":2}`, w.Body.String())
	})
}
