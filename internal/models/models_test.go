package models

import (
	"strings"
	"testing"
)

func TestLinkFilter_Match(t *testing.T) {
	filter := LinkFilter{
		Substring: "/epstein/files/",
		Suffix:    ".pdf",
	}

	tests := []struct {
		name string
		link string
		want bool
	}{
		{"同时满足片段和后缀", "https://www.justice.gov/epstein/files/doc1.pdf", true},
		{"深层路径", "https://www.justice.gov/epstein/files/vol2/exhibit-04.pdf", true},
		{"缺少路径片段", "https://www.justice.gov/other/files/doc1.pdf", false},
		{"缺少后缀", "https://www.justice.gov/epstein/files/doc1.html", false},
		{"后缀后带查询参数", "https://www.justice.gov/epstein/files/doc1.pdf?v=2", false},
		{"后缀大小写不匹配", "https://www.justice.gov/epstein/files/doc1.PDF", false},
		{"片段大小写不匹配", "https://www.justice.gov/Epstein/Files/doc1.pdf", false},
		{"空链接", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Match(tt.link); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}

func TestLinkFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		filter  LinkFilter
		wantErr bool
	}{
		{"有效规则", LinkFilter{Substring: "/docs/", Suffix: ".pdf"}, false},
		{"缺少片段", LinkFilter{Suffix: ".pdf"}, true},
		{"缺少后缀", LinkFilter{Substring: "/docs/"}, true},
		{"全空", LinkFilter{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLinkSet_AddIdempotent(t *testing.T) {
	set := NewLinkSet()

	if !set.Add("https://example.com/a.pdf") {
		t.Error("首次添加应返回true")
	}
	if set.Add("https://example.com/a.pdf") {
		t.Error("重复添加应返回false")
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}

	// 重复添加不改变集合大小
	for i := 0; i < 10; i++ {
		set.Add("https://example.com/a.pdf")
	}
	if set.Len() != 1 {
		t.Errorf("重复添加后 Len() = %d, want 1", set.Len())
	}

	if !set.Contains("https://example.com/a.pdf") {
		t.Error("Contains() 应返回true")
	}
	if set.Contains("https://example.com/b.pdf") {
		t.Error("未添加的链接 Contains() 应返回false")
	}
}

func TestLinkSet_Serialize(t *testing.T) {
	set := NewLinkSet()

	// 乱序添加,序列化结果必须字典序升序
	set.Add("https://b/x.pdf")
	set.Add("https://a/y.pdf")

	got := set.Serialize()
	want := "https://a/y.pdf\nhttps://b/x.pdf"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}

	// 末尾无换行符
	if strings.HasSuffix(got, "\n") {
		t.Error("序列化结果末尾不应有换行符")
	}

	// 相同集合内容,序列化结果确定
	set2 := NewLinkSet()
	set2.Add("https://a/y.pdf")
	set2.Add("https://b/x.pdf")
	if set2.Serialize() != got {
		t.Error("相同集合的序列化结果应一致,与添加顺序无关")
	}
}

func TestLinkSet_SerializeEmpty(t *testing.T) {
	set := NewLinkSet()
	if got := set.Serialize(); got != "" {
		t.Errorf("空集合 Serialize() = %q, want 空字符串", got)
	}
}

func TestWalkConfig_Validate(t *testing.T) {
	valid := WalkConfig{
		WaitTime:     2,
		MaxPages:     500,
		Headless:     true,
		NextLabel:    "Next",
		Filter:       LinkFilter{Substring: "/epstein/files/", Suffix: ".pdf"},
		ArtifactName: "epstein_pdf_links.txt",
	}

	tests := []struct {
		name    string
		mutate  func(c *WalkConfig)
		wantErr bool
	}{
		{"有效配置", func(c *WalkConfig) {}, false},
		{"等待时间为0", func(c *WalkConfig) { c.WaitTime = 0 }, false},
		{"等待时间为负", func(c *WalkConfig) { c.WaitTime = -1 }, true},
		{"等待时间过大", func(c *WalkConfig) { c.WaitTime = 61 }, true},
		{"页数上限为0", func(c *WalkConfig) { c.MaxPages = 0 }, true},
		{"页数上限过大", func(c *WalkConfig) { c.MaxPages = 10001 }, true},
		{"缺少控件标签", func(c *WalkConfig) { c.NextLabel = "" }, true},
		{"缺少产物文件名", func(c *WalkConfig) { c.ArtifactName = "" }, true},
		{"过滤规则无效", func(c *WalkConfig) { c.Filter.Suffix = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.mutate(&config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWalkState_Terminal(t *testing.T) {
	tests := []struct {
		state WalkState
		want  bool
	}{
		{StateRunning, false},
		{StateExhausted, true},
		{StateLimitReached, true},
		{StateCancelled, true},
	}

	for _, tt := range tests {
		if got := tt.state.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestNewWalkTask(t *testing.T) {
	config := WalkConfig{
		WaitTime:     2,
		MaxPages:     500,
		NextLabel:    "Next",
		Filter:       LinkFilter{Substring: "/epstein/files/", Suffix: ".pdf"},
		ArtifactName: "epstein_pdf_links.txt",
	}

	task, err := NewWalkTask("https://www.justice.gov/epstein-files", ModeDynamic, config)
	if err != nil {
		t.Fatalf("NewWalkTask() error = %v", err)
	}

	if task.ID == "" {
		t.Error("任务ID不应为空")
	}
	if task.Domain != "www.justice.gov" {
		t.Errorf("Domain = %v, want www.justice.gov", task.Domain)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Status = %v, want %v", task.Status, TaskStatusPending)
	}
	if task.Stats.State != StateRunning {
		t.Errorf("初始状态 = %v, want %v", task.Stats.State, StateRunning)
	}

	// 无效URL
	if _, err := NewWalkTask("not a url", ModeDynamic, config); err == nil {
		t.Error("无效URL应返回错误")
	}

	// 无效配置
	bad := config
	bad.MaxPages = 0
	if _, err := NewWalkTask("https://example.com", ModeDynamic, bad); err == nil {
		t.Error("无效配置应返回错误")
	}
}

func TestWalkTask_JSONRoundtrip(t *testing.T) {
	config := WalkConfig{
		WaitTime:     2,
		MaxPages:     500,
		NextLabel:    "Next",
		Filter:       LinkFilter{Substring: "/epstein/files/", Suffix: ".pdf"},
		ArtifactName: "epstein_pdf_links.txt",
	}

	task, err := NewWalkTask("https://example.com/list", ModeStatic, config)
	if err != nil {
		t.Fatalf("NewWalkTask() error = %v", err)
	}

	data, err := task.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var restored WalkTask
	if err := restored.FromJSON(data); err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}

	if restored.ID != task.ID || restored.TargetURL != task.TargetURL || restored.Mode != task.Mode {
		t.Error("JSON往返后任务字段不一致")
	}
}

func TestCliHeaders_Parse(t *testing.T) {
	tests := []struct {
		name    string
		headers CliHeaders
		wantErr bool
	}{
		{"有效头部", CliHeaders{"User-Agent: MyBot/1.0"}, false},
		{"多个头部", CliHeaders{"Accept: */*", "X-Custom: v"}, false},
		{"值含冒号", CliHeaders{"Referer: https://example.com"}, false},
		{"缺少冒号", CliHeaders{"InvalidHeader"}, true},
		{"名称为空", CliHeaders{": value"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.headers.Parse()
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
