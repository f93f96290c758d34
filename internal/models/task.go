package models

import (
	"encoding/json"
	"net/url"
	"time"
)

// TaskStatus 任务状态
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"   // 待执行
	TaskStatusRunning   TaskStatus = "running"   // 执行中
	TaskStatusCompleted TaskStatus = "completed" // 已完成
	TaskStatusFailed    TaskStatus = "failed"    // 失败
	TaskStatusCancelled TaskStatus = "cancelled" // 已取消
)

// WalkMode 翻页驱动模式
type WalkMode string

const (
	ModeDynamic WalkMode = "dynamic" // 无头浏览器(点击翻页控件)
	ModeStatic  WalkMode = "static"  // 静态抓取(跟随下一页链接)
)

// WalkTask 翻页采集任务
type WalkTask struct {
	// 基本信息
	ID          string     `json:"id"`                     // 任务唯一ID (UUID)
	TargetURL   string     `json:"target_url"`             // 列表页入口URL
	Domain      string     `json:"domain"`                 // 解析的域名
	CreatedAt   time.Time  `json:"created_at"`             // 创建时间
	StartedAt   *time.Time `json:"started_at,omitempty"`   // 开始时间
	CompletedAt *time.Time `json:"completed_at,omitempty"` // 完成时间

	// 配置参数
	Config WalkConfig `json:"config"` // 采集配置

	// 执行状态
	Status TaskStatus `json:"status"` // 任务状态
	Mode   WalkMode   `json:"mode"`   // 翻页模式

	// 统计信息
	Stats WalkStats `json:"stats"` // 任务统计

	// 错误信息
	ErrorMessage string `json:"error_message,omitempty"` // 错误消息
}

// NewWalkTask 创建新任务
func NewWalkTask(targetURL string, mode WalkMode, config WalkConfig) (*WalkTask, error) {
	if err := ValidateURL(targetURL); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	parsed, _ := url.Parse(targetURL)

	return &WalkTask{
		ID:        generateID(),
		TargetURL: targetURL,
		Domain:    parsed.Host,
		CreatedAt: time.Now(),
		Config:    config,
		Status:    TaskStatusPending,
		Mode:      mode,
		Stats:     WalkStats{State: StateRunning},
	}, nil
}

// ToJSON 序列化为JSON
func (t *WalkTask) ToJSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// FromJSON 从JSON反序列化
func (t *WalkTask) FromJSON(data []byte) error {
	return json.Unmarshal(data, t)
}
