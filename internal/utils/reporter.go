package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/PdfWalker/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Reporter 产物与报告生成器
// 负责将链接集合写入产物文件,并生成JSON格式的采集报告
type Reporter struct {
	outputDir string
	domain    string
}

// NewReporter 创建报告生成器
func NewReporter(outputDir string, domain string) *Reporter {
	return &Reporter{
		outputDir: outputDir,
		domain:    domain,
	}
}

// OutputDir 返回该任务的输出目录(含域名子目录)
func (r *Reporter) OutputDir() string {
	return filepath.Join(r.outputDir, r.domain)
}

// WriteArtifact 将链接集合序列化为产物文件
// 内容格式: 字典序升序,每行一个URL,末尾无换行符
// 返回: 产物文件完整路径
func (r *Reporter) WriteArtifact(set *models.LinkSet, filename string) (string, error) {
	dir := filepath.Join(r.outputDir, r.domain)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}

	artifactPath := filepath.Join(dir, filename)
	if err := os.WriteFile(artifactPath, []byte(set.Serialize()), 0644); err != nil {
		return "", fmt.Errorf("写入产物文件失败: %w", err)
	}

	Infof("📄 产物已写入: %s (%d 个URL)", artifactPath, set.Len())
	return artifactPath, nil
}

// GenerateReport 生成采集报告
// 输出: reports/walk_report.json + reports/page_visits.json
func (r *Reporter) GenerateReport(report *models.WalkReport) error {
	reportsDir := filepath.Join(r.outputDir, r.domain, "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return fmt.Errorf("创建报告目录失败: %w", err)
	}

	// 保存主报告
	if err := r.saveJSONReport(reportsDir, "walk_report.json", report); err != nil {
		return err
	}

	// 保存逐页访问记录
	if err := r.saveJSONReport(reportsDir, "page_visits.json", report.PageVisits); err != nil {
		return err
	}

	Infof("✅ 报告已生成: %s", reportsDir)
	return nil
}

// saveJSONReport 保存JSON报告
func (r *Reporter) saveJSONReport(dir string, filename string, data interface{}) error {
	filepath := filepath.Join(dir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化JSON失败: %w", err)
	}

	if err := os.WriteFile(filepath, jsonData, 0644); err != nil {
		return fmt.Errorf("写入报告文件失败: %w", err)
	}

	Debugf("保存报告: %s", filepath)
	return nil
}

// NewProgressBar 创建进度条
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
