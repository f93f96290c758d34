package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RecoveryAshes/PdfWalker/internal/core"
	"github.com/RecoveryAshes/PdfWalker/internal/crawlers"
	"github.com/RecoveryAshes/PdfWalker/internal/models"
	"github.com/RecoveryAshes/PdfWalker/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 命令行参数
var (
	// 全局参数
	configFile string
	verbose    bool
	logLevel   string

	// HTTP头部参数
	headers        []string // 自定义HTTP请求头
	validateConfig bool     // 验证配置文件

	// 采集参数
	targetURL     string
	urlFile       string
	mode          string
	waitTime      int
	maxPages      int
	headless      bool
	nextLabel     string
	matchSub      string
	matchSuffix   string
	artifactName  string
	respectRobots bool
	showProgress  bool
	outputDir     string

	// 批量处理参数
	batchDelay      int
	continueOnError bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfwalker",
	Short: "分页列表PDF链接采集工具",
	Long: `PdfWalker - 分页文档列表的PDF链接采集工具 (Go版本)

这是一个专门用于遍历分页文档列表、收集PDF链接的工具,支持:
  • 动态翻页(无头浏览器点击下一页控件)
  • 静态翻页(跟随下一页链接)
  • 按路径片段和文件后缀过滤链接
  • 跨页去重,产物按字典序输出
  • 页数安全上限,防止无限翻页
  • 批量URL处理
  • 自定义HTTP请求头

使用示例:
  # 采集默认目标的PDF链接
  pdfwalker -u https://www.justice.gov/epstein-files/doj-disclosures

  # 静态模式,自定义过滤规则
  pdfwalker -u https://example.com/list -m static --match-substring /docs/ --match-suffix .pdf

  # 验证配置文件
  pdfwalker --validate-config

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 加载配置
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		// 初始化日志系统
		logConfig := utils.LogConfig{
			Level:      config.Logging.Level,
			LogDir:     config.Logging.LogDir,
			MaxSize:    config.Logging.Rotation.MaxSize,
			MaxBackups: config.Logging.Rotation.MaxBackups,
			MaxAge:     config.Logging.Rotation.MaxAge,
			Compress:   config.Logging.Rotation.Compress,
		}

		// 命令行参数覆盖配置文件
		if logLevel != "" {
			logConfig.Level = logLevel
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("初始化日志系统失败: %w", err)
		}

		if verbose {
			utils.Info("详细模式已启用")
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 信号处理: Ctrl+C触发context取消,保留部分结果后退出
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		appConfig, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		// 创建HTTP头部管理器
		headerManager, err := core.NewHeaderManager("", headers)
		if err != nil {
			return fmt.Errorf("创建HTTP头部管理器失败: %w", err)
		}

		// 如果用户请求验证配置
		if validateConfig {
			utils.Info("🔍 验证HTTP头部配置...")
			if err := headerManager.LoadConfig(); err != nil {
				return fmt.Errorf("加载配置失败: %w", err)
			}
			if err := headerManager.Validate(); err != nil {
				return fmt.Errorf("配置验证失败: %w", err)
			}

			// 显示合并后的头部(脱敏)
			safeHeaders := headerManager.GetSafeHeaders()
			utils.Info("✅ 配置验证通过!")
			utils.Infof("当前有效的HTTP头部 (%d个):", len(safeHeaders))
			for name, value := range safeHeaders {
				utils.Infof("  %s: %s", name, value)
			}
			return nil
		}

		// 如果没有提供任何参数,显示帮助信息
		if targetURL == "" && urlFile == "" {
			return cmd.Help()
		}

		// 验证参数
		if err := ValidateFlags(targetURL, waitTime, maxPages, mode); err != nil {
			return err
		}

		// 合并命令行参数到配置
		appConfig.MergeCLIFlags(waitTime, maxPages, headless,
			nextLabel, matchSub, matchSuffix, artifactName, respectRobots)
		if outputDir != "" {
			appConfig.Output.BaseDir = outputDir
		}
		if cmd.Flags().Changed("batch-delay") {
			appConfig.Batch.TargetDelay = batchDelay
		}
		if cmd.Flags().Changed("continue-on-error") {
			appConfig.Batch.ContinueOnError = continueOnError
		}

		walkMode := models.WalkMode(mode)

		// 批量处理模式
		if urlFile != "" {
			urls, err := utils.ReadURLsFromFile(urlFile)
			if err != nil {
				return fmt.Errorf("读取URL文件失败: %w", err)
			}

			batch := core.NewBatchWalker(appConfig, walkMode, headerManager)
			if err := batch.RunAll(ctx, urls); err != nil {
				if errors.Is(err, context.Canceled) {
					utils.Warn("批量采集被中断,已完成目标的结果已保留")
					return nil
				}
				return fmt.Errorf("批量采集失败: %w", err)
			}

			utils.Info("✨ 批量采集任务完成!")
			return nil
		}

		// 单URL采集模式
		task, err := models.NewWalkTask(targetURL, walkMode, appConfig.Walk)
		if err != nil {
			return fmt.Errorf("创建任务失败: %w", err)
		}

		pager, err := crawlers.NewPager(walkMode, appConfig.Walk, headerManager)
		if err != nil {
			return err
		}

		// 进度订阅者: 日志流 + 可选的状态面板
		progress := models.MultiReporter{utils.NewLogReporter()}
		if showProgress {
			progress = append(progress, utils.NewPanelReporter(appConfig.Walk.MaxPages))
		}

		walker := core.NewWalker(task, appConfig.Output.BaseDir, pager, progress)
		report, err := walker.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("采集失败: %w", err)
		}

		// 显示统计结果
		fmt.Println("\n==================================================")
		fmt.Println("📊 采集统计")
		fmt.Println("==================================================")
		fmt.Printf("✅ 访问页数: %d\n", report.Stats.PagesVisited)
		fmt.Printf("✅ 匹配链接(含重复): %d\n", report.Stats.MatchedLinks)
		fmt.Printf("✅ 唯一链接: %d\n", report.Stats.UniqueLinks)
		fmt.Printf("📄 产物文件: %s\n", report.ArtifactPath)
		fmt.Printf("🏁 终止状态: %s\n", report.Stats.State)
		fmt.Printf("⏱️  总耗时: %.2f秒\n", report.Duration)
		fmt.Println("==================================================")

		utils.Info("✨ 采集任务完成!")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("PdfWalker %s\n", Version)
		fmt.Printf("构建时间: %s\n", BuildTime)
		fmt.Println("Go实现版本 - 分页列表PDF链接采集工具")
	},
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出模式")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")

	// HTTP头部参数
	rootCmd.PersistentFlags().StringSliceVarP(&headers, "header", "H", []string{}, "自定义HTTP头部,格式: 'Name: Value',可多次指定")
	rootCmd.PersistentFlags().BoolVar(&validateConfig, "validate-config", false, "验证配置文件正确性")

	// 采集参数
	rootCmd.Flags().StringVarP(&targetURL, "url", "u", "", "列表页入口URL (必需,除非使用 --url-file)")
	rootCmd.Flags().StringVarP(&urlFile, "url-file", "f", "", "包含URL列表的文件路径")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "dynamic", "翻页模式 (dynamic|static)")
	rootCmd.Flags().IntVarP(&waitTime, "wait", "w", 2, "翻页后等待时间(秒)")
	rootCmd.Flags().IntVar(&maxPages, "max-pages", 500, "页数安全上限")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "无头浏览器模式")
	rootCmd.Flags().StringVar(&nextLabel, "next-label", "", "下一页控件的无障碍标签 (默认: Next)")
	rootCmd.Flags().StringVar(&matchSub, "match-substring", "", "链接必须包含的路径片段 (默认: /epstein/files/)")
	rootCmd.Flags().StringVar(&matchSuffix, "match-suffix", "", "链接必须的文件后缀 (默认: .pdf)")
	rootCmd.Flags().StringVar(&artifactName, "artifact", "", "产物文件名 (默认: epstein_pdf_links.txt)")
	rootCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "静态模式下遵守robots.txt")
	rootCmd.Flags().BoolVar(&showProgress, "progress", true, "显示进度条")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "输出目录 (默认: output)")

	// 批量处理参数
	rootCmd.Flags().IntVar(&batchDelay, "batch-delay", 5, "批量处理URL间延迟(秒)")
	rootCmd.Flags().BoolVar(&continueOnError, "continue-on-error", true, "遇到错误继续处理")

	// 添加子命令
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
