package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/PdfWalker/internal/models"
	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	Walk    models.WalkConfig `mapstructure:"walk"`
	Logging LoggingConfig     `mapstructure:"logging"`
	Output  OutputConfig      `mapstructure:"output"`
	Batch   BatchConfig       `mapstructure:"batch"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	BaseDir          string `mapstructure:"base_dir"`
	DomainSeparation bool   `mapstructure:"domain_separation"`
}

// BatchConfig 批量采集配置
type BatchConfig struct {
	TargetDelay     int  `mapstructure:"target_delay"`      // 目标之间的间隔(秒)
	ContinueOnError bool `mapstructure:"continue_on_error"` // 单个目标失败后是否继续
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件
	if configPath != "" {
		// 使用指定的配置文件
		v.SetConfigFile(configPath)
	} else {
		// 搜索默认位置
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// 添加配置搜索路径
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		// 用户主目录
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pdfwalker"))
		}
	}

	// 设置默认值
	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果配置文件不存在,使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在,使用默认值
	}

	// 解析配置
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// 翻页采集默认值
	v.SetDefault("walk.wait_time", 2)
	v.SetDefault("walk.max_pages", 500)
	v.SetDefault("walk.headless", true)
	v.SetDefault("walk.next_label", "Next")
	v.SetDefault("walk.filter.substring", "/epstein/files/")
	v.SetDefault("walk.filter.suffix", ".pdf")
	v.SetDefault("walk.artifact_name", "epstein_pdf_links.txt")
	v.SetDefault("walk.respect_robots", false)

	// 日志配置默认值
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "logs")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)

	// 输出配置默认值
	v.SetDefault("output.base_dir", "output")
	v.SetDefault("output.domain_separation", true)

	// 批量采集默认值
	v.SetDefault("batch.target_delay", 5)
	v.SetDefault("batch.continue_on_error", true)
}

// GetWalkConfig 从配置中提取采集配置
func (c *Config) GetWalkConfig() models.WalkConfig {
	return c.Walk
}

// MergeCLIFlags 合并命令行参数到配置
// 命令行参数优先于配置文件
func (c *Config) MergeCLIFlags(
	waitTime int,
	maxPages int,
	headless bool,
	nextLabel string,
	substring string,
	suffix string,
	artifactName string,
	respectRobots bool,
) {
	if waitTime >= 0 {
		c.Walk.WaitTime = waitTime
	}
	if maxPages > 0 {
		c.Walk.MaxPages = maxPages
	}
	c.Walk.Headless = headless
	if nextLabel != "" {
		c.Walk.NextLabel = nextLabel
	}
	if substring != "" {
		c.Walk.Filter.Substring = substring
	}
	if suffix != "" {
		c.Walk.Filter.Suffix = suffix
	}
	if artifactName != "" {
		c.Walk.ArtifactName = artifactName
	}
	c.Walk.RespectRobots = respectRobots
}
