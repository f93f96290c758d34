package models

import "fmt"

// WalkState 翻页任务的终止状态
type WalkState string

const (
	StateRunning      WalkState = "running"       // 进行中
	StateExhausted    WalkState = "exhausted"     // 自然终止(无下一页)
	StateLimitReached WalkState = "limit-reached" // 触发页数安全上限
	StateCancelled    WalkState = "cancelled"     // 被取消(保留部分结果)
)

// Terminal 判断是否为终止状态
func (s WalkState) Terminal() bool {
	return s == StateExhausted || s == StateLimitReached || s == StateCancelled
}

// WalkConfig 翻页采集配置
type WalkConfig struct {
	WaitTime      int        `json:"wait_time" mapstructure:"wait_time"`           // 翻页后等待时间(秒) (默认:2)
	MaxPages      int        `json:"max_pages" mapstructure:"max_pages"`           // 页数安全上限 (默认:500)
	Headless      bool       `json:"headless" mapstructure:"headless"`             // 无头浏览器模式 (默认:true)
	NextLabel     string     `json:"next_label" mapstructure:"next_label"`         // 下一页控件的无障碍标签 (默认:"Next")
	Filter        LinkFilter `json:"filter" mapstructure:"filter"`                 // 链接过滤规则
	ArtifactName  string     `json:"artifact_name" mapstructure:"artifact_name"`   // 产物文件名
	RespectRobots bool       `json:"respect_robots" mapstructure:"respect_robots"` // 静态模式下是否遵守robots.txt
}

// Validate 验证配置
func (c *WalkConfig) Validate() error {
	if c.WaitTime < 0 || c.WaitTime > 60 {
		return fmt.Errorf("等待时间必须在0-60秒之间")
	}
	if c.MaxPages < 1 || c.MaxPages > 10000 {
		return fmt.Errorf("页数上限必须在1-10000之间")
	}
	if c.NextLabel == "" {
		return fmt.Errorf("下一页控件标签不能为空")
	}
	if c.ArtifactName == "" {
		return fmt.Errorf("产物文件名不能为空")
	}
	if err := c.Filter.Validate(); err != nil {
		return fmt.Errorf("过滤规则无效: %w", err)
	}
	return nil
}

// WalkStats 翻页任务统计
type WalkStats struct {
	PagesVisited int       `json:"pages_visited"` // 访问页数
	UniqueLinks  int       `json:"unique_links"`  // 唯一链接数(去重后)
	MatchedLinks int       `json:"matched_links"` // 各页匹配数之和(含重复)
	State        WalkState `json:"state"`         // 终止状态
	Duration     float64   `json:"duration"`      // 总耗时(秒)
}

// PageVisit 单页访问记录
// Matches是本页匹配链接数(包含已在集合中的),不是增量
type PageVisit struct {
	Page    int `json:"page"`    // 页码(从1开始)
	Matches int `json:"matches"` // 本页匹配链接数
	Total   int `json:"total"`   // 当前累计唯一链接数
}
