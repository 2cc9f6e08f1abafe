package domain

import "time"

type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusEmpty     RunStatus = "empty" // 种群在某一代全部失效，没有找到合法衣橱
	RunStatusFailed    RunStatus = "failed"
)

// OptimizationRun 只保存在进程内存中，进程重启后不再可用
type OptimizationRun struct {
	ID          string              `json:"id"`
	Status      RunStatus           `json:"status"`
	Progress    float64             `json:"progress"`
	Message     string              `json:"message"`
	Preferences Preferences         `json:"-"` // MandatoryIDs 为目录位置
	Catalog     []*Garment          `json:"-"` // 提交时的目录快照，结果中的位置都相对于它
	NotifyEmail string              `json:"-"`
	Result      *OptimizationResult `json:"result"`
	Error       string              `json:"error,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	StartedAt   *time.Time          `json:"startedAt"`
	FinishedAt  *time.Time          `json:"finishedAt"`
}
