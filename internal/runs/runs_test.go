package runs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/optimizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitAll(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
}

func TestSubmitSucceeded(t *testing.T) {
	var mu sync.Mutex
	var started, finished []domain.OptimizationRun

	s := NewStore(2, time.Hour, Hooks{
		OnStart: func(run domain.OptimizationRun) {
			mu.Lock()
			defer mu.Unlock()
			started = append(started, run)
		},
		OnFinish: func(run domain.OptimizationRun) {
			mu.Lock()
			defer mu.Unlock()
			finished = append(finished, run)
		},
	})

	result := &domain.OptimizationResult{
		Wardrobes:      []domain.WardrobeResult{{GarmentIDs: []int{0, 1}, Fitness: 0.8}},
		FitnessHistory: []float64{0.7, 0.8},
	}
	run := s.Submit(domain.Preferences{DesiredSize: 2}, nil, "user@example.com", func(r optimizer.Reporter) (*domain.OptimizationResult, error) {
		r.Report(0.5, "第 1/2 代")
		return result, nil
	})

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, domain.RunStatusQueued, run.Status)

	waitAll(t, s)

	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusSucceeded, got.Status)
	assert.Equal(t, 1.0, got.Progress)
	assert.Same(t, result, got.Result)
	assert.Equal(t, "user@example.com", got.NotifyEmail)
	require.NotNil(t, got.StartedAt)
	require.NotNil(t, got.FinishedAt)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, started, 1)
	assert.Equal(t, domain.RunStatusRunning, started[0].Status)
	require.Len(t, finished, 1)
	assert.Equal(t, domain.RunStatusSucceeded, finished[0].Status)
}

func TestSubmitTerminalStates(t *testing.T) {
	tests := []struct {
		name   string
		job    Job
		status domain.RunStatus
	}{
		{
			name: "empty",
			job: func(optimizer.Reporter) (*domain.OptimizationResult, error) {
				return &domain.OptimizationResult{Wardrobes: []domain.WardrobeResult{}, FitnessHistory: []float64{}}, nil
			},
			status: domain.RunStatusEmpty,
		},
		{
			name: "error",
			job: func(optimizer.Reporter) (*domain.OptimizationResult, error) {
				return nil, errors.New("目录为空")
			},
			status: domain.RunStatusFailed,
		},
		{
			name: "panic",
			job: func(optimizer.Reporter) (*domain.OptimizationResult, error) {
				panic("boom")
			},
			status: domain.RunStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(1, time.Hour, Hooks{})
			run := s.Submit(domain.Preferences{}, nil, "", tt.job)
			waitAll(t, s)

			got, err := s.Get(run.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			if tt.status == domain.RunStatusFailed {
				assert.NotEmpty(t, got.Error)
			}
		})
	}
}

func TestProgressIsVisibleWhileRunning(t *testing.T) {
	s := NewStore(1, time.Hour, Hooks{})

	reported := make(chan struct{})
	release := make(chan struct{})
	run := s.Submit(domain.Preferences{}, nil, "", func(r optimizer.Reporter) (*domain.OptimizationResult, error) {
		r.Report(0.25, "第 25/100 代")
		close(reported)
		<-release
		return nil, nil
	})

	<-reported
	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusRunning, got.Status)
	assert.Equal(t, 0.25, got.Progress)
	assert.Equal(t, "第 25/100 代", got.Message)
	assert.Equal(t, 1, s.Active())

	close(release)
	waitAll(t, s)
	assert.Equal(t, 0, s.Active())
}

func TestConcurrencyIsBounded(t *testing.T) {
	s := NewStore(1, time.Hour, Hooks{})

	release := make(chan struct{})
	running := make(chan struct{}, 2)
	job := func(optimizer.Reporter) (*domain.OptimizationResult, error) {
		running <- struct{}{}
		<-release
		return nil, nil
	}

	first := s.Submit(domain.Preferences{}, nil, "", job)
	<-running
	second := s.Submit(domain.Preferences{}, nil, "", job)

	// 第二个运行在第一个结束之前不能开始
	select {
	case <-running:
		t.Fatal("第二个运行不应该开始")
	case <-time.After(50 * time.Millisecond):
	}

	got, err := s.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusQueued, got.Status)
	assert.Equal(t, 2, s.Active())

	close(release)
	waitAll(t, s)

	for _, id := range []string{first.ID, second.ID} {
		got, err := s.Get(id)
		require.NoError(t, err)
		assert.Equal(t, domain.RunStatusEmpty, got.Status)
	}
}

func TestGetUnknownRun(t *testing.T) {
	s := NewStore(1, time.Hour, Hooks{})

	_, err := s.Get("does-not-exist")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestCleanupRemovesExpiredRuns(t *testing.T) {
	s := NewStore(1, time.Minute, Hooks{})

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	run := s.Submit(domain.Preferences{}, nil, "", func(optimizer.Reporter) (*domain.OptimizationResult, error) {
		return nil, nil
	})
	waitAll(t, s)

	assert.Zero(t, s.Cleanup())
	_, err := s.Get(run.ID)
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	assert.Equal(t, 1, s.Cleanup())
	_, err = s.Get(run.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)
}
