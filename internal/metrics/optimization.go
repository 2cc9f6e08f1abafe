package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
)

var (
	optimizationRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimization_runs_total",
			Help:      "Finished optimization runs by terminal status",
		},
		[]string{"status"},
	)

	optimizationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "optimization_duration_seconds",
			Help:      "Wall time of an optimization run",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	optimizationBestFitness = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "optimization_best_fitness",
			Help:      "Fitness of the best wardrobe of the last successful run",
		},
	)

	optimizationActiveRuns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "optimization_active_runs",
			Help:      "Optimization runs currently executing",
		},
	)
)

func init() {
	prometheus.MustRegister(optimizationRunsTotal, optimizationDuration, optimizationBestFitness, optimizationActiveRuns)
}

// RunStarted 在运行真正开始执行时调用
func RunStarted(domain.OptimizationRun) {
	optimizationActiveRuns.Inc()
}

// RunFinished 在运行结束时调用，记录状态、耗时和最佳适应度
func RunFinished(run domain.OptimizationRun) {
	optimizationActiveRuns.Dec()
	optimizationRunsTotal.WithLabelValues(string(run.Status)).Inc()

	if run.StartedAt != nil && run.FinishedAt != nil {
		optimizationDuration.Observe(run.FinishedAt.Sub(*run.StartedAt).Seconds())
	}

	if run.Status == domain.RunStatusSucceeded && run.Result != nil && len(run.Result.Wardrobes) > 0 {
		optimizationBestFitness.Set(run.Result.Wardrobes[0].Fitness)
	}
}
