package core

import (
	"context"
	"fmt"
	"time"

	"github.com/RecoveryAshes/PdfWalker/internal/crawlers"
	"github.com/RecoveryAshes/PdfWalker/internal/models"
	"github.com/RecoveryAshes/PdfWalker/internal/utils"
)

// BatchWalker 批量采集编排器
// 按顺序处理多个列表页入口,每个目标独立建任务、独立落盘,
// 目标之间互不污染链接集合
type BatchWalker struct {
	config *Config
	mode   models.WalkMode

	// HTTP头部提供者(所有目标共享)
	headerProvider models.HeaderProvider

	// 每个目标的采集报告
	results []*models.WalkReport
}

// NewBatchWalker 创建批量采集编排器
func NewBatchWalker(config *Config, mode models.WalkMode, headerProvider models.HeaderProvider) *BatchWalker {
	return &BatchWalker{
		config:         config,
		mode:           mode,
		headerProvider: headerProvider,
		results:        make([]*models.WalkReport, 0),
	}
}

// RunAll 依次采集所有目标
// 单个目标失败时根据batch.continue_on_error决定是否继续;
// context取消立即停止整个批次
func (bw *BatchWalker) RunAll(ctx context.Context, targets []string) error {
	total := len(targets)
	utils.Infof("🚀 批量采集启动: 共 %d 个目标", total)

	failed := 0
	for i, target := range targets {
		if ctx.Err() != nil {
			utils.Warnf("⚠️  批量采集被取消 (已完成 %d/%d)", i, total)
			return ctx.Err()
		}

		utils.Infof("📋 [%d/%d] 开始处理: %s", i+1, total, target)

		if err := bw.runOne(ctx, target); err != nil {
			failed++
			utils.Errorf("[%d/%d] 目标处理失败 [%s]: %v", i+1, total, target, err)

			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !bw.config.Batch.ContinueOnError {
				return fmt.Errorf("目标处理失败,批量采集中止: %w", err)
			}
		}

		// 目标之间的间隔,降低对目标站点的压力
		if i < total-1 && bw.config.Batch.TargetDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(bw.config.Batch.TargetDelay) * time.Second):
			}
		}
	}

	bw.printSummary(total, failed)
	return nil
}

// runOne 处理单个目标
func (bw *BatchWalker) runOne(ctx context.Context, target string) error {
	task, err := models.NewWalkTask(target, bw.mode, bw.config.Walk)
	if err != nil {
		return fmt.Errorf("创建任务失败: %w", err)
	}

	pager, err := crawlers.NewPager(bw.mode, bw.config.Walk, bw.headerProvider)
	if err != nil {
		return err
	}

	progress := models.MultiReporter{
		utils.NewLogReporter(),
	}

	walker := NewWalker(task, bw.config.Output.BaseDir, pager, progress)
	report, err := walker.Run(ctx)
	if report != nil {
		bw.results = append(bw.results, report)
	}
	return err
}

// printSummary 输出批量采集汇总
func (bw *BatchWalker) printSummary(total, failed int) {
	totalLinks := 0
	totalPages := 0
	for _, r := range bw.results {
		totalLinks += r.Stats.UniqueLinks
		totalPages += r.Stats.PagesVisited
	}

	utils.Infof("✅ 批量采集完成")
	utils.Infof("📊 目标数: %d, 失败: %d, 访问页数: %d, 收集链接: %d",
		total, failed, totalPages, totalLinks)
}

// Results 返回所有目标的采集报告
func (bw *BatchWalker) Results() []*models.WalkReport {
	return bw.results
}
