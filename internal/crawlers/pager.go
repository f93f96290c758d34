package crawlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/RecoveryAshes/PdfWalker/internal/models"
)

// 错误类型定义
var (
	ErrPageNotOpen    = errors.New("翻页器尚未打开页面")
	ErrNoNextControl  = errors.New("当前页没有可用的下一页控件")
	ErrRobotsDisallow = errors.New("robots.txt 禁止访问目标路径")
)

// Pager 翻页器接口
// 将分页遍历拆分为三个独立动作,便于替换驱动方式和单元测试:
//   - QueryLinks: 查询当前页的所有超链接(绝对URL)
//   - FindNextControl: 探测下一页控件是否存在且可用
//   - ClickControl: 触发控件,前进到下一页
type Pager interface {
	// Open 打开入口列表页
	Open(ctx context.Context, targetURL string) error

	// QueryLinks 返回当前页所有锚点的绝对URL
	QueryLinks() ([]string, error)

	// FindNextControl 探测下一页控件
	// 返回false表示控件不存在或已禁用(已到最后一页)
	FindNextControl() (bool, error)

	// ClickControl 触发下一页控件并等待新页面就绪
	// 必须在FindNextControl返回true之后调用
	ClickControl() error

	// Close 释放翻页器占用的资源
	Close() error
}

// NewPager 根据遍历模式创建翻页器
func NewPager(mode models.WalkMode, config models.WalkConfig, headerProvider models.HeaderProvider) (Pager, error) {
	switch mode {
	case models.ModeDynamic:
		return NewRodPager(config, headerProvider), nil
	case models.ModeStatic:
		return NewStaticPager(config, headerProvider), nil
	default:
		return nil, fmt.Errorf("未知的遍历模式: %s", mode)
	}
}
