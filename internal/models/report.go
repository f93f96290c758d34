package models

import (
	"encoding/json"
	"time"
)

// WalkReport 翻页采集报告
// 任务终止后生成,与链接产物一起写入输出目录
type WalkReport struct {
	// 任务信息
	TaskID    string   `json:"task_id"`
	TargetURL string   `json:"target_url"`
	Domain    string   `json:"domain"`
	Mode      WalkMode `json:"mode"`

	// 时间信息
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  float64   `json:"duration"` // 秒

	// 统计信息
	Stats WalkStats `json:"stats"`

	// 逐页访问记录
	PageVisits []PageVisit `json:"page_visits"`

	// 输出信息
	ArtifactPath string `json:"artifact_path"` // 链接产物文件路径
	OutputDir    string `json:"output_dir"`

	// 配置快照
	Config WalkConfig `json:"config"`
}

// ToJSON 序列化为JSON
func (r *WalkReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromJSON 从JSON反序列化
func (r *WalkReport) FromJSON(data []byte) error {
	return json.Unmarshal(data, r)
}
