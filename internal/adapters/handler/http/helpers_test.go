package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-wellness/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

type recordingQueue struct {
	mu      sync.Mutex
	reasons []string
}

func (q *recordingQueue) Enqueue(reason string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.reasons = append(q.reasons, reason)
}

type testAPI struct {
	router *gin.Engine
	state  *services.StateService
	store  *repository.MemoryStore
	gen    *MockGenerator
	queue  *recordingQueue
}

// newTestAPI wires the real services over an in-memory store with a fixed
// clock: Wednesday 2024-06-12 09:00 UTC.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	store := repository.NewMemoryStore()
	repo := repository.NewStateRepository(store, repository.DefaultNamespace, nil)

	state := services.NewStateService(repo,
		services.WithClock(func() time.Time { return now }),
		services.WithLocation(time.UTC),
	)
	require.NoError(t, state.Load(context.Background()))

	gen := new(MockGenerator)
	queue := &recordingQueue{}

	metricsSvc := services.NewMetricsService(state)
	habitSvc := services.NewHabitService(state)
	taskSvc := services.NewTaskService(state)
	readingSvc := services.NewReadingService(state)
	profileSvc := services.NewProfileService(state)
	statsSvc := services.NewStatsService(state, nil)
	insightSvc := services.NewInsightService(state, repo, gen, services.DefaultInsightConfig(), nil)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		StatsHandler:     adapterHTTP.NewStatsHandler(metricsSvc),
		HabitHandler:     adapterHTTP.NewHabitHandler(habitSvc),
		TaskHandler:      adapterHTTP.NewTaskHandler(taskSvc, queue),
		BookHandler:      adapterHTTP.NewBookHandler(readingSvc),
		AnalyticsHandler: adapterHTTP.NewAnalyticsHandler(statsSvc, habitSvc),
		InsightHandler:   adapterHTTP.NewInsightHandler(insightSvc),
		ProfileHandler:   adapterHTTP.NewProfileHandler(profileSvc, state),
		StartTime:        now,
	})

	return &testAPI{router: router, state: state, store: store, gen: gen, queue: queue}
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
