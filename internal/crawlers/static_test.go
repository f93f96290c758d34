package crawlers

import (
	"net/url"
	"testing"

	"github.com/RecoveryAshes/PdfWalker/internal/models"
)

func testWalkConfig() models.WalkConfig {
	return models.WalkConfig{
		WaitTime:     2,
		MaxPages:     500,
		NextLabel:    "Next",
		Filter:       models.LinkFilter{Substring: "/epstein/files/", Suffix: ".pdf"},
		ArtifactName: "epstein_pdf_links.txt",
	}
}

// newLoadedPager 构造一个已载入HTML的静态翻页器,不发起网络请求
func newLoadedPager(t *testing.T, baseURL string, html string) *StaticPager {
	t.Helper()

	sp := NewStaticPager(testWalkConfig(), nil)
	parsed, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("解析baseURL失败: %v", err)
	}
	sp.currentURL = parsed
	sp.currentBody = []byte(html)
	return sp
}

func TestStaticPager_QueryLinks(t *testing.T) {
	html := `<html><body>
		<a href="/epstein/files/doc1.pdf">Doc 1</a>
		<a href="https://cdn.example.com/epstein/files/doc2.pdf">Doc 2</a>
		<a href="relative/page.html">Page</a>
		<a href="mailto:someone@example.com">Mail</a>
		<a href="javascript:void(0)">JS</a>
		<a>no href</a>
	</body></html>`

	sp := newLoadedPager(t, "https://www.example.com/list/index.html", html)

	links, err := sp.QueryLinks()
	if err != nil {
		t.Fatalf("QueryLinks() error = %v", err)
	}

	want := []string{
		"https://www.example.com/epstein/files/doc1.pdf",
		"https://cdn.example.com/epstein/files/doc2.pdf",
		"https://www.example.com/list/relative/page.html",
	}

	if len(links) != len(want) {
		t.Fatalf("链接数 = %d, want %d (got %v)", len(links), len(want), links)
	}
	for i, w := range want {
		if links[i] != w {
			t.Errorf("links[%d] = %q, want %q", i, links[i], w)
		}
	}
}

func TestStaticPager_QueryLinksNotOpen(t *testing.T) {
	sp := NewStaticPager(testWalkConfig(), nil)
	if _, err := sp.QueryLinks(); err != ErrPageNotOpen {
		t.Errorf("未打开页面时 QueryLinks() error = %v, want %v", err, ErrPageNotOpen)
	}
}

func TestStaticPager_FindNextControl(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		wantNext bool
		wantURL  string
	}{
		{
			name:     "aria-label匹配",
			html:     `<a aria-label="Next" href="/list?page=2">→</a>`,
			wantNext: true,
			wantURL:  "https://www.example.com/list?page=2",
		},
		{
			name:     "rel=next回退",
			html:     `<a rel="next" href="/list?page=3">下一页</a>`,
			wantNext: true,
			wantURL:  "https://www.example.com/list?page=3",
		},
		{
			name:     "可见文本回退",
			html:     `<a href="/list?page=4"> Next </a>`,
			wantNext: true,
			wantURL:  "https://www.example.com/list?page=4",
		},
		{
			name:     "控件不存在",
			html:     `<a href="/list?page=1">Previous</a>`,
			wantNext: false,
		},
		{
			name:     "disabled属性",
			html:     `<a aria-label="Next" href="/list?page=2" disabled>→</a>`,
			wantNext: false,
		},
		{
			name:     "aria-disabled属性",
			html:     `<a aria-label="Next" href="/list?page=2" aria-disabled="true">→</a>`,
			wantNext: false,
		},
		{
			name:     "disabled类",
			html:     `<a aria-label="Next" href="/list?page=2" class="pager disabled">→</a>`,
			wantNext: false,
		},
		{
			name:     "缺少href",
			html:     `<a aria-label="Next">→</a>`,
			wantNext: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := newLoadedPager(t, "https://www.example.com/list", "<html><body>"+tt.html+"</body></html>")

			hasNext, err := sp.FindNextControl()
			if err != nil {
				t.Fatalf("FindNextControl() error = %v", err)
			}
			if hasNext != tt.wantNext {
				t.Errorf("FindNextControl() = %v, want %v", hasNext, tt.wantNext)
			}
			if tt.wantNext && sp.nextURL != tt.wantURL {
				t.Errorf("nextURL = %q, want %q", sp.nextURL, tt.wantURL)
			}
		})
	}
}

func TestStaticPager_ClickControlWithoutNext(t *testing.T) {
	sp := newLoadedPager(t, "https://www.example.com/list", `<html><body></body></html>`)
	if err := sp.ClickControl(); err != ErrNoNextControl {
		t.Errorf("ClickControl() error = %v, want %v", err, ErrNoNextControl)
	}
}

func TestNewPager(t *testing.T) {
	config := testWalkConfig()

	if _, err := NewPager(models.ModeDynamic, config, nil); err != nil {
		t.Errorf("动态模式创建失败: %v", err)
	}
	if _, err := NewPager(models.ModeStatic, config, nil); err != nil {
		t.Errorf("静态模式创建失败: %v", err)
	}
	if _, err := NewPager(models.WalkMode("unknown"), config, nil); err == nil {
		t.Error("未知模式应返回错误")
	}
}
