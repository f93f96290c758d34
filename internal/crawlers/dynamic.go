package crawlers

import (
	"context"
	"fmt"
	"time"

	"github.com/RecoveryAshes/PdfWalker/internal/models"
	"github.com/RecoveryAshes/PdfWalker/internal/utils"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodPager 动态翻页器(使用Rod驱动无头浏览器)
// 适用于JavaScript渲染的分页列表页,下一页控件通过真实点击触发
type RodPager struct {
	config models.WalkConfig

	// HTTP头部提供者
	headerProvider models.HeaderProvider

	// 资源监控器(启动浏览器前检查可用内存)
	resourceMonitor *ResourceMonitor

	browser *rod.Browser
	page    *rod.Page

	// FindNextControl探测到的控件,供ClickControl使用
	nextControl *rod.Element

	ctx context.Context
}

// NewRodPager 创建动态翻页器
func NewRodPager(config models.WalkConfig, headerProvider models.HeaderProvider) *RodPager {
	return &RodPager{
		config:          config,
		headerProvider:  headerProvider,
		resourceMonitor: NewResourceMonitor(DefaultResourceConfig()),
	}
}

// Open 启动浏览器并打开入口列表页
func (rp *RodPager) Open(ctx context.Context, targetURL string) error {
	rp.ctx = ctx

	// 启动前检查系统资源
	if err := rp.resourceMonitor.CheckBeforeLaunch(); err != nil {
		utils.Warnf("资源检查告警: %v", err)
	}

	if err := rp.launchBrowser(); err != nil {
		return err
	}

	page, err := rp.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("创建标签页失败: %w", err)
	}
	rp.page = page.Context(ctx)

	// 设置网络拦截,注入自定义HTTP头部
	if rp.headerProvider != nil {
		rp.setupHeaderIntercept()
	}

	utils.Infof("🌐 动态翻页模式启动")
	utils.Infof("目标URL: %s", targetURL)
	utils.Infof("翻页等待: %d秒, 页数上限: %d", rp.config.WaitTime, rp.config.MaxPages)

	if err := rp.page.Navigate(targetURL); err != nil {
		return fmt.Errorf("导航失败: %w", err)
	}

	return rp.waitReady()
}

// launchBrowser 启动浏览器
func (rp *RodPager) launchBrowser() error {
	l := launcher.New().Headless(rp.config.Headless)

	// 添加证书忽略参数,允许访问自签名或过期证书的HTTPS站点
	l = l.Set("ignore-certificate-errors")
	utils.Debugf("浏览器启动参数: --ignore-certificate-errors (跳过TLS证书验证)")

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("启动浏览器失败: %w", err)
	}

	rp.browser = rod.New().ControlURL(controlURL)
	if err := rp.browser.Connect(); err != nil {
		return fmt.Errorf("连接浏览器失败: %w", err)
	}

	utils.Debugf("浏览器已启动: %s", controlURL)
	return nil
}

// setupHeaderIntercept 设置网络请求拦截,注入自定义HTTP头部
func (rp *RodPager) setupHeaderIntercept() {
	router := rp.page.HijackRequests()

	router.MustAdd("*", func(hctx *rod.Hijack) {
		headers, err := rp.headerProvider.GetHeaders()
		if err != nil {
			utils.Warnf("获取HTTP头部失败: %v", err)
		} else {
			for name, values := range headers {
				if len(values) > 0 {
					hctx.Request.Req().Header.Set(name, values[0])
				}
			}
		}

		// 不拦截请求本身,仅注入头部
		hctx.ContinueRequest(&proto.FetchContinueRequest{})
	})

	go router.Run()
}

// waitReady 等待当前页面加载完成并给JavaScript渲染留出时间
func (rp *RodPager) waitReady() error {
	if err := rp.page.WaitLoad(); err != nil {
		return fmt.Errorf("等待页面加载失败: %w", err)
	}

	// 等待动态内容渲染
	if err := rp.page.Timeout(10 * time.Second).WaitStable(300 * time.Millisecond); err != nil {
		utils.Debugf("等待页面稳定超时: %v", err)
	}

	utils.Debugf("页面加载完成")
	return nil
}

// QueryLinks 执行JavaScript收集当前页所有锚点的绝对URL
func (rp *RodPager) QueryLinks() ([]string, error) {
	if rp.page == nil {
		return nil, ErrPageNotOpen
	}

	// 浏览器端的a.href属性已经是绝对URL,无需二次解析
	result, err := rp.page.Evaluate(&rod.EvalOptions{
		JS: `() => {
			var anchors = document.querySelectorAll('a[href]');
			var links = [];
			for (var i = 0; i < anchors.length; i++) {
				var href = anchors[i].href;
				if (href && (href.indexOf('http://') === 0 || href.indexOf('https://') === 0)) {
					links.push(href);
				}
			}
			return links;
		}`,
	})
	if err != nil {
		return nil, fmt.Errorf("执行JavaScript提取链接失败: %w", err)
	}

	links := make([]string, 0)
	if result.Value.Arr() != nil {
		for _, item := range result.Value.Arr() {
			if item.Str() != "" {
				links = append(links, item.Str())
			}
		}
	}

	return links, nil
}

// FindNextControl 探测下一页控件
// 匹配aria-label或可见文本等于配置标签的锚点/按钮,并检查禁用状态
func (rp *RodPager) FindNextControl() (bool, error) {
	if rp.page == nil {
		return false, ErrPageNotOpen
	}
	rp.nextControl = nil

	selector := fmt.Sprintf("a[aria-label='%s'], button[aria-label='%s']",
		rp.config.NextLabel, rp.config.NextLabel)

	el, err := rp.page.Timeout(5 * time.Second).Element(selector)
	if err != nil {
		// aria-label未命中时回退到可见文本匹配
		el, err = rp.page.Timeout(3*time.Second).ElementR("a, button", rp.config.NextLabel)
		if err != nil {
			utils.Debugf("未找到下一页控件 (标签: %s)", rp.config.NextLabel)
			return false, nil
		}
	}

	visible, err := el.Visible()
	if err != nil || !visible {
		utils.Debugf("下一页控件不可见,视为最后一页")
		return false, nil
	}

	if controlDisabled(el) {
		utils.Debugf("下一页控件已禁用,视为最后一页")
		return false, nil
	}

	rp.nextControl = el
	return true, nil
}

// controlDisabled 检查控件的disabled/aria-disabled属性
func controlDisabled(el *rod.Element) bool {
	if attr, err := el.Attribute("disabled"); err == nil && attr != nil {
		return true
	}
	if attr, err := el.Attribute("aria-disabled"); err == nil && attr != nil && *attr == "true" {
		return true
	}
	return false
}

// ClickControl 点击下一页控件并等待新页面就绪
func (rp *RodPager) ClickControl() error {
	if rp.nextControl == nil {
		return ErrNoNextControl
	}

	if err := rp.nextControl.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("点击下一页控件失败: %w", err)
	}
	rp.nextControl = nil

	return rp.waitReady()
}

// Close 关闭浏览器
func (rp *RodPager) Close() error {
	if rp.browser == nil {
		return nil
	}

	err := rp.browser.Close()
	rp.browser = nil
	rp.page = nil
	utils.Debugf("浏览器已关闭")
	return err
}
