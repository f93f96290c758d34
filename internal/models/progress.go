package models

// ProgressReporter 进度上报接口
// 翻页循环通过此接口上报进度,渲染(日志流/状态面板)只是其中一种订阅者,
// 与采集逻辑解耦
type ProgressReporter interface {
	// PageVisited 每扫描完一页调用一次
	PageVisited(v PageVisit)

	// WalkFinished 任务终止时调用(任意终止状态)
	WalkFinished(stats WalkStats)
}

// MultiReporter 组合多个进度订阅者
type MultiReporter []ProgressReporter

// PageVisited 依次转发给所有订阅者
func (m MultiReporter) PageVisited(v PageVisit) {
	for _, r := range m {
		r.PageVisited(v)
	}
}

// WalkFinished 依次转发给所有订阅者
func (m MultiReporter) WalkFinished(stats WalkStats) {
	for _, r := range m {
		r.WalkFinished(stats)
	}
}

// NopReporter 空实现,用于不需要进度上报的场景
type NopReporter struct{}

func (NopReporter) PageVisited(PageVisit)  {}
func (NopReporter) WalkFinished(WalkStats) {}
