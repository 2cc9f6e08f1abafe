package runs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/optimizer"
)

var ErrRunNotFound = errors.New("运行不存在或已过期")

// Job 执行一次优化，reporter 用于更新运行进度
type Job func(reporter optimizer.Reporter) (*domain.OptimizationResult, error)

// Hooks 在运行开始和结束时被调用，参数是运行的快照
type Hooks struct {
	OnStart  func(run domain.OptimizationRun)
	OnFinish func(run domain.OptimizationRun)
}

// Store 在内存中保存所有运行，并限制同时执行的数量
type Store struct {
	mu        sync.RWMutex
	runs      map[string]*domain.OptimizationRun
	sem       chan struct{}
	retention time.Duration
	hooks     Hooks
	wg        sync.WaitGroup

	now func() time.Time
}

func NewStore(maxConcurrent int, retention time.Duration, hooks Hooks) *Store {
	return &Store{
		runs:      make(map[string]*domain.OptimizationRun),
		sem:       make(chan struct{}, max(1, maxConcurrent)),
		retention: retention,
		hooks:     hooks,
		now:       time.Now,
	}
}

// Submit 登记一个新的运行并在后台执行，返回登记时的快照
func (s *Store) Submit(prefs domain.Preferences, catalog []*domain.Garment, notifyEmail string, job Job) domain.OptimizationRun {
	run := &domain.OptimizationRun{
		ID:          uuid.NewString(),
		Status:      domain.RunStatusQueued,
		Message:     "排队中",
		Preferences: prefs,
		Catalog:     catalog,
		NotifyEmail: notifyEmail,
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	s.runs[run.ID] = run
	snapshot := *run
	s.mu.Unlock()

	s.wg.Add(1)
	go s.execute(run.ID, job)

	return snapshot
}

func (s *Store) execute(id string, job Job) {
	defer s.wg.Done()

	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	started := s.update(id, func(run *domain.OptimizationRun) {
		now := s.now()
		run.Status = domain.RunStatusRunning
		run.Message = "开始搜索"
		run.StartedAt = &now
	})
	if s.hooks.OnStart != nil {
		s.hooks.OnStart(started)
	}

	result, err := s.runJob(id, job)

	finished := s.update(id, func(run *domain.OptimizationRun) {
		now := s.now()
		run.FinishedAt = &now
		switch {
		case err != nil:
			run.Status = domain.RunStatusFailed
			run.Error = err.Error()
			run.Message = "运行失败"
		case result == nil || len(result.Wardrobes) == 0:
			run.Status = domain.RunStatusEmpty
			run.Result = result
			run.Message = "没有找到合法的衣橱"
		default:
			run.Status = domain.RunStatusSucceeded
			run.Result = result
			run.Progress = 1
			run.Message = "搜索完成"
		}
	})

	slog.Info("优化运行结束", "id", id, "status", finished.Status, "duration", finished.FinishedAt.Sub(*finished.StartedAt))

	if s.hooks.OnFinish != nil {
		s.hooks.OnFinish(finished)
	}
}

func (s *Store) runJob(id string, job Job) (result *domain.OptimizationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("优化运行发生 panic", "id", id, "panic", r)
			err = fmt.Errorf("内部错误: %v", r)
		}
	}()

	return job(&progressReporter{store: s, id: id})
}

// update 在锁内修改运行并返回修改后的快照
func (s *Store) update(id string, fn func(run *domain.OptimizationRun)) domain.OptimizationRun {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, exists := s.runs[id]
	if !exists {
		return domain.OptimizationRun{}
	}
	fn(run)
	return *run
}

func (s *Store) Get(id string) (domain.OptimizationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return domain.OptimizationRun{}, ErrRunNotFound
	}
	return *run, nil
}

// Active 返回排队中和执行中的运行数量
func (s *Store) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cnt := 0
	for _, run := range s.runs {
		if run.FinishedAt == nil {
			cnt++
		}
	}
	return cnt
}

// Cleanup 删除结束时间超过保留期的运行，返回删除的数量
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.retention)
	cnt := 0
	for id, run := range s.runs {
		if run.FinishedAt != nil && run.FinishedAt.Before(deadline) {
			delete(s.runs, id)
			cnt++
		}
	}
	return cnt
}

// StartJanitor 定期清理过期的运行，直到 ctx 结束
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if cnt := s.Cleanup(); cnt > 0 {
					slog.Debug("清理过期的优化运行", "count", cnt)
				}
			}
		}
	}()
}

// Wait 等待所有运行结束，ctx 结束时提前返回
func (s *Store) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type progressReporter struct {
	store *Store
	id    string
}

func (r *progressReporter) Report(progress float64, message string) {
	r.store.update(r.id, func(run *domain.OptimizationRun) {
		run.Progress = progress
		run.Message = message
	})
}
