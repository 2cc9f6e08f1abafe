package optimizer

import "log/slog"

// Reporter 接收每一代的进度通知，实现不能阻塞，也不能修改搜索状态
type Reporter interface {
	Report(progress float64, message string)
}

type NopReporter struct{}

func (NopReporter) Report(float64, string) {}

// ReporterFunc 允许直接用函数作为 Reporter
type ReporterFunc func(progress float64, message string)

func (f ReporterFunc) Report(progress float64, message string) {
	f(progress, message)
}

// LogReporter 把进度写到 debug 日志
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) Report(progress float64, message string) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug(message, "progress", progress)
}

// MultiReporter 依次通知多个 Reporter
type MultiReporter []Reporter

func (m MultiReporter) Report(progress float64, message string) {
	for _, r := range m {
		if r != nil {
			r.Report(progress, message)
		}
	}
}
