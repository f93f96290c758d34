package crawlers

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/RecoveryAshes/PdfWalker/internal/models"
	"github.com/RecoveryAshes/PdfWalker/internal/utils"
	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly/v2"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"
)

// robotsUserAgent robots.txt检查时使用的UA标识
const robotsUserAgent = "PdfWalker"

// StaticPager 静态翻页器(使用Colly)
// 适用于服务端渲染的列表页,通过跟随下一页控件的href前进
type StaticPager struct {
	collector *colly.Collector
	config    models.WalkConfig

	// HTTP头部提供者
	headerProvider models.HeaderProvider

	// robots.txt规则缓存 (host -> group)
	httpClient  *http.Client
	robotsGroup *robotstxt.Group

	// 当前页状态
	currentURL  *url.URL
	currentBody []byte

	// FindNextControl解析出的下一页URL,供ClickControl使用
	nextURL string

	ctx context.Context
}

// NewStaticPager 创建静态翻页器
func NewStaticPager(config models.WalkConfig, headerProvider models.HeaderProvider) *StaticPager {
	// 自定义HTTP客户端,禁用TLS证书验证
	// HTTP超时时间直接使用配置的 wait_time 值(秒)
	httpTimeout := time.Duration(config.WaitTime) * time.Second
	if httpTimeout < 10*time.Second {
		httpTimeout = 10 * time.Second
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		},
		Timeout: httpTimeout,
	}

	c := colly.NewCollector()
	c.SetClient(httpClient)
	c.SetRequestTimeout(httpTimeout)
	utils.Debugf("静态翻页器: TLS证书验证已禁用, HTTP超时 %d 秒", int(httpTimeout.Seconds()))

	sp := &StaticPager{
		collector:      c,
		config:         config,
		headerProvider: headerProvider,
		httpClient:     httpClient,
	}

	sp.setupCallbacks()
	return sp
}

// setupCallbacks 设置Colly回调
func (sp *StaticPager) setupCallbacks() {
	sp.collector.OnRequest(func(r *colly.Request) {
		// 应用自定义HTTP头部
		if sp.headerProvider != nil {
			headers, err := sp.headerProvider.GetHeaders()
			if err != nil {
				utils.Warnf("获取HTTP头部失败: %v", err)
			} else {
				for name, values := range headers {
					if len(values) > 0 {
						r.Headers.Set(name, values[0])
					}
				}
			}
		}

		utils.Debugf("访问: %s", r.URL.String())
	})

	sp.collector.OnResponse(func(r *colly.Response) {
		body := r.Body

		// Colly自动处理gzip/deflate,brotli需要手动解压
		if encoding := r.Headers.Get("Content-Encoding"); strings.EqualFold(strings.TrimSpace(encoding), "br") {
			decompressed, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
			if err != nil {
				utils.Warnf("brotli解压失败 [%s]: %v", r.Request.URL, err)
			} else {
				utils.Debugf("brotli解压成功 [%s]: 原始=%d bytes, 解压后=%d bytes",
					r.Request.URL, len(body), len(decompressed))
				body = decompressed
			}
		}

		sp.currentURL = r.Request.URL
		sp.currentBody = body
	})

	sp.collector.OnError(func(r *colly.Response, err error) {
		utils.Errorf("请求失败 [%s]: %v", r.Request.URL, err)
	})
}

// Open 打开入口列表页
func (sp *StaticPager) Open(ctx context.Context, targetURL string) error {
	sp.ctx = ctx

	parsed, err := url.Parse(targetURL)
	if err != nil {
		return fmt.Errorf("解析目标URL失败: %w", err)
	}

	utils.Infof("🔍 静态翻页模式启动")
	utils.Infof("目标URL: %s", targetURL)

	// robots.txt检查(可选)
	if sp.config.RespectRobots {
		if err := sp.loadRobots(parsed); err != nil {
			utils.Warnf("加载robots.txt失败,按允许处理: %v", err)
		}
	}

	return sp.fetch(targetURL)
}

// loadRobots 获取并解析目标站点的robots.txt
func (sp *StaticPager) loadRobots(target *url.URL) error {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", target.Scheme, target.Host)

	resp, err := sp.httpClient.Get(robotsURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return err
	}

	sp.robotsGroup = robots.FindGroup(robotsUserAgent)
	utils.Debugf("robots.txt已加载: %s", robotsURL)
	return nil
}

// fetch 抓取指定URL并更新当前页状态
func (sp *StaticPager) fetch(pageURL string) error {
	if sp.ctx != nil {
		if err := sp.ctx.Err(); err != nil {
			return err
		}
	}

	// robots.txt路径检查
	if sp.robotsGroup != nil {
		parsed, err := url.Parse(pageURL)
		if err == nil && !sp.robotsGroup.Test(parsed.Path) {
			return fmt.Errorf("%w: %s", ErrRobotsDisallow, parsed.Path)
		}
	}

	sp.currentBody = nil
	if err := sp.collector.Visit(pageURL); err != nil {
		return fmt.Errorf("访问列表页失败: %w", err)
	}

	if sp.currentBody == nil {
		return fmt.Errorf("未收到页面响应: %s", pageURL)
	}

	return nil
}

// QueryLinks 从当前页HTML中提取所有锚点的绝对URL
func (sp *StaticPager) QueryLinks() ([]string, error) {
	if sp.currentBody == nil {
		return nil, ErrPageNotOpen
	}

	doc, err := html.Parse(bytes.NewReader(sp.currentBody))
	if err != nil {
		return nil, fmt.Errorf("解析HTML失败: %w", err)
	}

	links := make([]string, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					if abs := sp.absolutize(attr.Val); abs != "" {
						links = append(links, abs)
					}
					break
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

// absolutize 将href解析为以当前页为基准的绝对URL
// 仅保留http/https协议的链接
func (sp *StaticPager) absolutize(href string) string {
	linkURL, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}

	abs := sp.currentURL.ResolveReference(linkURL)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

// FindNextControl 在当前页中查找下一页控件
// 匹配顺序: aria-label属性 > rel=next > 可见文本,并检查禁用状态
func (sp *StaticPager) FindNextControl() (bool, error) {
	if sp.currentBody == nil {
		return false, ErrPageNotOpen
	}
	sp.nextURL = ""

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(sp.currentBody))
	if err != nil {
		return false, fmt.Errorf("解析HTML失败: %w", err)
	}

	sel := doc.Find(fmt.Sprintf("a[aria-label='%s']", sp.config.NextLabel)).First()
	if sel.Length() == 0 {
		sel = doc.Find("a[rel='next']").First()
	}
	if sel.Length() == 0 {
		// 回退到可见文本匹配
		doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.EqualFold(strings.TrimSpace(s.Text()), sp.config.NextLabel) {
				sel = s
				return false
			}
			return true
		})
	}

	if sel.Length() == 0 {
		utils.Debugf("未找到下一页控件 (标签: %s)", sp.config.NextLabel)
		return false, nil
	}

	if selectionDisabled(sel) {
		utils.Debugf("下一页控件已禁用,视为最后一页")
		return false, nil
	}

	href, exists := sel.Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return false, nil
	}

	next := sp.absolutize(href)
	if next == "" {
		return false, nil
	}

	sp.nextURL = next
	return true, nil
}

// selectionDisabled 检查控件的disabled/aria-disabled属性及disabled类
func selectionDisabled(sel *goquery.Selection) bool {
	if _, exists := sel.Attr("disabled"); exists {
		return true
	}
	if v, exists := sel.Attr("aria-disabled"); exists && v == "true" {
		return true
	}
	return sel.HasClass("disabled")
}

// ClickControl 跟随下一页控件的href前进
func (sp *StaticPager) ClickControl() error {
	if sp.nextURL == "" {
		return ErrNoNextControl
	}

	next := sp.nextURL
	sp.nextURL = ""
	return sp.fetch(next)
}

// Close 释放资源
// 静态翻页器没有需要显式释放的资源,清空页面状态即可
func (sp *StaticPager) Close() error {
	sp.currentBody = nil
	sp.nextURL = ""
	return nil
}
