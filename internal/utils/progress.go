package utils

import (
	"github.com/RecoveryAshes/PdfWalker/internal/models"
	"github.com/schollz/progressbar/v3"
)

// LogReporter 日志流进度订阅者
// 每页输出一条状态日志: 本页匹配数 + 累计唯一链接数
type LogReporter struct{}

// NewLogReporter 创建日志流订阅者
func NewLogReporter() *LogReporter {
	return &LogReporter{}
}

// PageVisited 输出单页状态行
func (lr *LogReporter) PageVisited(v models.PageVisit) {
	Infof("📑 第 %d 页: 本页匹配 %d 个链接, 累计唯一 %d 个", v.Page, v.Matches, v.Total)
}

// WalkFinished 输出终止摘要
func (lr *LogReporter) WalkFinished(stats models.WalkStats) {
	switch stats.State {
	case models.StateExhausted:
		Info("✅ 已到最后一页,采集自然终止")
	case models.StateLimitReached:
		Warnf("⚠️  触发页数安全上限,采集中止 (已访问 %d 页)", stats.PagesVisited)
	case models.StateCancelled:
		Warnf("⚠️  采集被取消,保留部分结果 (已访问 %d 页)", stats.PagesVisited)
	}
	Infof("📊 共收集 %d 个唯一URL, 访问 %d 页", stats.UniqueLinks, stats.PagesVisited)
}

// PanelReporter 状态面板订阅者(进度条渲染)
type PanelReporter struct {
	bar *progressbar.ProgressBar
}

// NewPanelReporter 创建状态面板订阅者
// maxPages为进度条上限(页数安全上限)
func NewPanelReporter(maxPages int) *PanelReporter {
	return &PanelReporter{
		bar: NewProgressBar(maxPages, "翻页采集中"),
	}
}

// PageVisited 推进进度条
func (pr *PanelReporter) PageVisited(v models.PageVisit) {
	_ = pr.bar.Add(1)
}

// WalkFinished 结束进度条渲染
func (pr *PanelReporter) WalkFinished(stats models.WalkStats) {
	_ = pr.bar.Finish()
}
