package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/garments/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/garments/{id}", "404"))

	req := httptest.NewRequest("GET", "/garments/42", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/garments/{id}", "404")))
	assert.Positive(t, testutil.CollectAndCount(httpRequestDuration))
}

func TestMiddlewareDefaultsToOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/optimizations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/optimizations", "200"))

	req := httptest.NewRequest("POST", "/optimizations", http.NoBody)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/optimizations", "200")))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "unknown", normalizePath(""))
	assert.Equal(t, "/knowledge/styles", normalizePath("/knowledge/styles"))
}

func TestRunMetrics(t *testing.T) {
	activeBefore := testutil.ToFloat64(optimizationActiveRuns)
	succeededBefore := testutil.ToFloat64(optimizationRunsTotal.WithLabelValues("succeeded"))
	emptyBefore := testutil.ToFloat64(optimizationRunsTotal.WithLabelValues("empty"))

	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	finished := started.Add(3 * time.Second)

	RunStarted(domain.OptimizationRun{Status: domain.RunStatusRunning})
	assert.Equal(t, activeBefore+1, testutil.ToFloat64(optimizationActiveRuns))

	RunFinished(domain.OptimizationRun{
		Status:     domain.RunStatusSucceeded,
		StartedAt:  &started,
		FinishedAt: &finished,
		Result: &domain.OptimizationResult{
			Wardrobes: []domain.WardrobeResult{{Fitness: 0.73}, {Fitness: 0.70}},
		},
	})

	assert.Equal(t, activeBefore, testutil.ToFloat64(optimizationActiveRuns))
	assert.Equal(t, succeededBefore+1, testutil.ToFloat64(optimizationRunsTotal.WithLabelValues("succeeded")))
	assert.Equal(t, 0.73, testutil.ToFloat64(optimizationBestFitness))

	RunStarted(domain.OptimizationRun{})
	RunFinished(domain.OptimizationRun{Status: domain.RunStatusEmpty})

	assert.Equal(t, emptyBefore+1, testutil.ToFloat64(optimizationRunsTotal.WithLabelValues("empty")))
	assert.Equal(t, 0.73, testutil.ToFloat64(optimizationBestFitness))
}
