package http_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

func TestInsightHandler(t *testing.T) {
	t.Run("Wellness success is cached", func(t *testing.T) {
		api := newTestAPI(t)
		api.gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("Drink a glass of water.", nil).Once()

		assert.Equal(t, http.StatusNotFound, api.do("GET", "/api/v1/insights/last", "").Code)

		w := api.do("POST", "/api/v1/insights/wellness", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"variant":"wellness","text":"Drink a glass of water.","fallback":false}`, w.Body.String())

		w = api.do("GET", "/api/v1/insights/last", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Drink a glass of water.")
	})

	t.Run("Offline generator answers with the fallback", func(t *testing.T) {
		api := newTestAPI(t)
		api.gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", domain.ErrGeneratorOffline)

		w := api.do("POST", "/api/v1/insights/hydration", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), services.FallbackHydrationOffline)
		assert.Contains(t, w.Body.String(), `"fallback":true`)
	})

	t.Run("Failure does not touch the ledger", func(t *testing.T) {
		api := newTestAPI(t)
		api.gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota"))

		w := api.do("POST", "/api/v1/insights/sleep", "")

		assert.Contains(t, w.Body.String(), services.FallbackSleepEnergyFailure)
		assert.Empty(t, api.state.View().Stats.History)
	})

	t.Run("Fail: 400 on unknown variant", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do("POST", "/api/v1/insights/horoscope", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		api.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})
}
