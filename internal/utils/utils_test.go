package utils

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RecoveryAshes/PdfWalker/internal/models"
)

func TestHeaderValidator_ValidateHeader(t *testing.T) {
	hv := NewHeaderValidator()

	tests := []struct {
		name    string
		header  string
		value   string
		wantErr bool
	}{
		{"合法头部", "User-Agent", "MyBot/1.0", false},
		{"带连字符", "X-Custom-Header", "value", false},
		{"名称为空", "", "value", true},
		{"名称含空格", "User Agent", "value", true},
		{"名称含下划线", "User_Agent", "value", true},
		{"值含控制字符", "X-Test", "bad\x00value", true},
		{"禁止的头部Host", "Host", "example.com", true},
		{"禁止的头部小写", "content-length", "42", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hv.ValidateHeader(tt.header, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHeader(%q, %q) error = %v, wantErr %v", tt.header, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestHeaderValidator_ValueTooLong(t *testing.T) {
	hv := NewHeaderValidator()
	long := strings.Repeat("a", MaxHeaderValueLength+1)
	if err := hv.ValidateValue("X-Test", long); err == nil {
		t.Error("超长头部值应返回错误")
	}
}

func TestHeaderRedactor_RedactHeaderValue(t *testing.T) {
	hr := NewHeaderRedactor()

	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{"非敏感头部原样返回", "User-Agent", "MyBot/1.0", "MyBot/1.0"},
		{"Bearer令牌", "Authorization", "Bearer abc123def456", "Bearer ***"},
		{"长密钥保留首尾", "X-Api-Key", "abcdefghijkl", "abcd***ijkl"},
		{"短密钥完全隐藏", "X-Token", "short", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hr.RedactHeaderValue(tt.header, tt.value); got != tt.want {
				t.Errorf("RedactHeaderValue(%q, %q) = %q, want %q", tt.header, tt.value, got, tt.want)
			}
		})
	}
}

func TestHeaderRedactor_Redact(t *testing.T) {
	hr := NewHeaderRedactor()

	headers := http.Header{}
	headers.Set("User-Agent", "MyBot/1.0")
	headers.Set("Authorization", "Bearer secret-token")

	safe := hr.Redact(headers)
	if safe["User-Agent"] != "MyBot/1.0" {
		t.Errorf("非敏感头部被误脱敏: %q", safe["User-Agent"])
	}
	if safe["Authorization"] != "Bearer ***" {
		t.Errorf("敏感头部未脱敏: %q", safe["Authorization"])
	}
}

func TestReporter_WriteArtifact(t *testing.T) {
	outputDir := t.TempDir()
	r := NewReporter(outputDir, "www.example.com")

	set := models.NewLinkSet()
	set.Add("https://b/x.pdf")
	set.Add("https://a/y.pdf")

	path, err := r.WriteArtifact(set, "epstein_pdf_links.txt")
	if err != nil {
		t.Fatalf("WriteArtifact() error = %v", err)
	}

	wantPath := filepath.Join(outputDir, "www.example.com", "epstein_pdf_links.txt")
	if path != wantPath {
		t.Errorf("产物路径 = %q, want %q", path, wantPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取产物失败: %v", err)
	}
	if string(data) != "https://a/y.pdf\nhttps://b/x.pdf" {
		t.Errorf("产物内容 = %q", string(data))
	}
}

func TestReadURLsFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "urls.txt")

	content := `# 注释行
https://example.com/list1

https://example.com/list2
not-a-valid-url
ftp://example.com/skip
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	urls, err := ReadURLsFromFile(file)
	if err != nil {
		t.Fatalf("ReadURLsFromFile() error = %v", err)
	}

	if len(urls) != 2 {
		t.Fatalf("URL数 = %d, want 2 (got %v)", len(urls), urls)
	}
	if urls[0] != "https://example.com/list1" || urls[1] != "https://example.com/list2" {
		t.Errorf("URL列表 = %v", urls)
	}
}

func TestReadURLsFromFile_NoValidURLs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "urls.txt")

	if err := os.WriteFile(file, []byte("# 只有注释\n\n"), 0644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	if _, err := ReadURLsFromFile(file); err == nil {
		t.Error("没有有效URL时应返回错误")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"有效的HTTPS URL", "https://example.com/list", false},
		{"有效的HTTP URL", "http://example.com", false},
		{"无协议", "example.com", true},
		{"不支持的协议", "ftp://example.com", true},
		{"缺少主机名", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
