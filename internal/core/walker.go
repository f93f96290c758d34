package core

import (
	"context"
	"time"

	"github.com/RecoveryAshes/PdfWalker/internal/crawlers"
	"github.com/RecoveryAshes/PdfWalker/internal/models"
	"github.com/RecoveryAshes/PdfWalker/internal/utils"
)

// Walker 翻页采集编排器
// 驱动翻页器逐页遍历列表,过滤并去重链接,通过进度订阅者上报状态,
// 任意终止状态(含取消)都会落盘产物和报告
type Walker struct {
	task     *models.WalkTask
	pager    crawlers.Pager
	set      *models.LinkSet
	progress models.ProgressReporter
	output   *utils.Reporter

	// 逐页访问记录
	pageVisits []models.PageVisit

	// 页游标(已访问页数,从0开始计数)
	cursor int

	// 各页匹配数之和(含跨页重复)
	matchedTotal int
}

// NewWalker 创建翻页采集编排器
func NewWalker(task *models.WalkTask, outputDir string, pager crawlers.Pager, progress models.ProgressReporter) *Walker {
	if progress == nil {
		progress = models.NopReporter{}
	}

	return &Walker{
		task:       task,
		pager:      pager,
		set:        models.NewLinkSet(),
		progress:   progress,
		output:     utils.NewReporter(outputDir, task.Domain),
		pageVisits: make([]models.PageVisit, 0),
	}
}

// Run 执行翻页采集任务
// 无论以何种状态终止,都会写入产物文件并生成报告。
// 返回的报告始终有效;错误仅表示遍历被异常打断(浏览器故障、取消等)
func (w *Walker) Run(ctx context.Context) (*models.WalkReport, error) {
	startTime := time.Now()
	now := startTime
	w.task.StartedAt = &now
	w.task.Status = models.TaskStatusRunning

	utils.Infof("🚀 开始采集任务: %s", w.task.ID)

	if err := w.pager.Open(ctx, w.task.TargetURL); err != nil {
		// 浏览器可能已部分启动,确保释放
		if closeErr := w.pager.Close(); closeErr != nil {
			utils.Warnf("关闭翻页器失败: %v", closeErr)
		}
		w.task.Status = models.TaskStatusFailed
		w.task.ErrorMessage = err.Error()
		return w.finalize(startTime, models.StateCancelled), err
	}
	defer func() {
		if closeErr := w.pager.Close(); closeErr != nil {
			utils.Warnf("关闭翻页器失败: %v", closeErr)
		}
	}()

	state, walkErr := w.walk(ctx)

	report := w.finalize(startTime, state)
	if walkErr != nil {
		w.task.Status = models.TaskStatusFailed
		w.task.ErrorMessage = walkErr.Error()
	} else if state == models.StateCancelled {
		w.task.Status = models.TaskStatusCancelled
	} else {
		w.task.Status = models.TaskStatusCompleted
	}

	return report, walkErr
}

// walk 主遍历循环
// 每轮迭代: 提取当前页 -> 游标前进 -> 上报进度 -> 探测下一页控件 ->
// 检查页数上限 -> 点击前进 -> 固定间隔等待
func (w *Walker) walk(ctx context.Context) (models.WalkState, error) {
	for {
		if ctx.Err() != nil {
			return models.StateCancelled, nil
		}

		// 提取并过滤当前页链接
		matches, err := w.extractPage()
		if err != nil {
			return models.StateCancelled, err
		}

		w.cursor++
		visit := models.PageVisit{
			Page:    w.cursor,
			Matches: matches,
			Total:   w.set.Len(),
		}
		w.pageVisits = append(w.pageVisits, visit)
		w.progress.PageVisited(visit)

		// 探测下一页控件,不存在或禁用即自然终止
		hasNext, err := w.pager.FindNextControl()
		if err != nil {
			return models.StateCancelled, err
		}
		if !hasNext {
			return models.StateExhausted, nil
		}

		// 页数安全上限检查,防止恶意或异常分页导致无限遍历
		if w.cursor > w.task.Config.MaxPages {
			return models.StateLimitReached, nil
		}

		// 前进到下一页
		if err := w.pager.ClickControl(); err != nil {
			return models.StateCancelled, err
		}

		// 固定间隔等待,给页面渲染留时间,也避免对目标站点造成压力
		if cancelled := w.pause(ctx); cancelled {
			return models.StateCancelled, nil
		}
	}
}

// extractPage 提取当前页链接并写入去重集合
// 返回本页匹配过滤规则的链接数(包含已在集合中的重复项)
func (w *Walker) extractPage() (int, error) {
	links, err := w.pager.QueryLinks()
	if err != nil {
		return 0, err
	}

	matches := 0
	for _, link := range links {
		if !w.task.Config.Filter.Match(link) {
			continue
		}
		matches++
		w.matchedTotal++
		w.set.Add(link)
	}

	return matches, nil
}

// pause 在翻页之间等待固定时长,可被取消打断
// 返回true表示等待期间context被取消
func (w *Walker) pause(ctx context.Context) bool {
	wait := time.Duration(w.task.Config.WaitTime) * time.Second
	if wait <= 0 {
		return ctx.Err() != nil
	}

	select {
	case <-ctx.Done():
		return true
	case <-time.After(wait):
		return false
	}
}

// finalize 任务收尾
// 落盘产物文件、上报终止统计、生成JSON报告。
// 取消和上限触发与自然终止一样落盘,保留部分结果
func (w *Walker) finalize(startTime time.Time, state models.WalkState) *models.WalkReport {
	endTime := time.Now()
	duration := endTime.Sub(startTime)

	stats := models.WalkStats{
		PagesVisited: w.cursor,
		UniqueLinks:  w.set.Len(),
		MatchedLinks: w.matchedTotal,
		State:        state,
		Duration:     duration.Seconds(),
	}
	w.task.Stats = stats
	w.task.CompletedAt = &endTime

	// 产物落盘: 字典序升序,每行一个URL
	artifactPath, err := w.output.WriteArtifact(w.set, w.task.Config.ArtifactName)
	if err != nil {
		utils.Errorf("写入产物文件失败: %v", err)
	}

	w.progress.WalkFinished(stats)

	report := &models.WalkReport{
		TaskID:       w.task.ID,
		TargetURL:    w.task.TargetURL,
		Domain:       w.task.Domain,
		Mode:         w.task.Mode,
		StartTime:    startTime,
		EndTime:      endTime,
		Duration:     duration.Seconds(),
		Stats:        stats,
		PageVisits:   w.pageVisits,
		ArtifactPath: artifactPath,
		OutputDir:    w.output.OutputDir(),
		Config:       w.task.Config,
	}

	if err := w.output.GenerateReport(report); err != nil {
		utils.Errorf("生成报告失败: %v", err)
	}

	return report
}

// LinkSet 返回当前链接集合(测试和批量模式汇总用)
func (w *Walker) LinkSet() *models.LinkSet {
	return w.set
}
