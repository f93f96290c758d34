package models

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// LinkFilter 链接过滤规则
// 链接必须同时满足两个条件才会被收集:
//   - 包含指定的路径片段 (区分大小写)
//   - 以指定的文件后缀结尾 (区分大小写)
type LinkFilter struct {
	// Substring 必须包含的路径片段 (如 "/epstein/files/")
	Substring string `json:"substring" mapstructure:"substring"`

	// Suffix 必须的文件后缀 (如 ".pdf")
	Suffix string `json:"suffix" mapstructure:"suffix"`
}

// Match 判断链接是否同时满足路径片段和后缀条件
func (f LinkFilter) Match(link string) bool {
	return strings.Contains(link, f.Substring) && strings.HasSuffix(link, f.Suffix)
}

// Validate 验证过滤规则
func (f LinkFilter) Validate() error {
	if f.Substring == "" {
		return fmt.Errorf("路径片段不能为空")
	}
	if f.Suffix == "" {
		return fmt.Errorf("文件后缀不能为空")
	}
	return nil
}

// LinkSet 链接去重集合
// 集合只增不减,重复添加同一链接不改变集合大小
type LinkSet struct {
	mu    sync.RWMutex
	links map[string]struct{}
}

// NewLinkSet 创建空的链接集合
func NewLinkSet() *LinkSet {
	return &LinkSet{
		links: make(map[string]struct{}),
	}
}

// Add 添加链接到集合
// 返回: true表示新链接, false表示集合中已存在
func (s *LinkSet) Add(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.links[link]; exists {
		return false
	}
	s.links[link] = struct{}{}
	return true
}

// Contains 检查链接是否已在集合中
func (s *LinkSet) Contains(link string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.links[link]
	return exists
}

// Len 返回集合中唯一链接数量
func (s *LinkSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}

// Sorted 返回按字典序升序排列的链接列表
func (s *LinkSet) Sorted() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]string, 0, len(s.links))
	for link := range s.links {
		sorted = append(sorted, link)
	}
	sort.Strings(sorted)
	return sorted
}

// Serialize 序列化为最终产物内容
// 格式: 字典序升序,换行符连接,末尾无换行符
func (s *LinkSet) Serialize() string {
	return strings.Join(s.Sorted(), "\n")
}
