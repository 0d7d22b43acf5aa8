// Package config 提供应用配置（YAML + 环境变量覆盖）与 Pipeline Node 工厂。
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/moviekit/eval"
	"github.com/rushteam/moviekit/model"
)

// Config 是应用级配置。加载顺序：默认值 → YAML 文件 → 环境变量。
// 环境变量用于容器化部署时覆盖个别字段，不必改动配置文件。
type Config struct {
	Data struct {
		// Path 评分数据 CSV 路径
		Path string `yaml:"path"`
	} `yaml:"data"`

	Output struct {
		// Dir 批式流水线产物（CSV/JSON）输出目录
		Dir string `yaml:"dir"`
	} `yaml:"output"`

	Server struct {
		// Addr HTTP 服务监听地址，如 ":8080"
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Pipeline struct {
		// Path 有历史用户的推荐 Pipeline 配置（pipeline.Config YAML）。
		// 为空时使用内置的 模型召回 → 已评分过滤 → Top-N 链。
		Path string `yaml:"path"`
	} `yaml:"pipeline"`

	Redis struct {
		// Addr 为空时使用内存 Store
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	// SVD 矩阵分解超参数
	SVD model.SVDConfig `yaml:"svd"`

	// TopN 推荐列表长度
	TopN int `yaml:"top_n"`

	Eval struct {
		// SplitRatio 测试集比例
		SplitRatio float64 `yaml:"split_ratio"`
		// Seed 切分与训练共用的随机种子
		Seed int64 `yaml:"seed"`
		// K 排序指标的截断位置
		K int `yaml:"k"`
		// Threshold 相关性阈值（实际评分 >= 阈值视为相关）
		Threshold float64 `yaml:"threshold"`
	} `yaml:"eval"`
}

// Default 返回默认配置。
func Default() *Config {
	cfg := &Config{}
	cfg.Data.Path = "data/ratings.csv"
	cfg.Output.Dir = "output"
	cfg.Server.Addr = ":8080"
	cfg.SVD = model.DefaultSVDConfig()
	cfg.TopN = 10

	opts := eval.DefaultOptions()
	cfg.Eval.SplitRatio = opts.SplitRatio
	cfg.Eval.Seed = opts.Seed
	cfg.Eval.K = opts.K
	cfg.Eval.Threshold = opts.Threshold
	return cfg
}

// Load 加载配置：path 为空或文件不存在时只使用默认值 + 环境变量。
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Data.Path = getEnv("MOVIEKIT_DATA_PATH", c.Data.Path)
	c.Output.Dir = getEnv("MOVIEKIT_OUTPUT_DIR", c.Output.Dir)
	c.Server.Addr = getEnv("MOVIEKIT_SERVER_ADDR", c.Server.Addr)
	c.Pipeline.Path = getEnv("MOVIEKIT_PIPELINE_PATH", c.Pipeline.Path)
	c.Redis.Addr = getEnv("MOVIEKIT_REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("MOVIEKIT_REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("MOVIEKIT_REDIS_DB", c.Redis.DB)
	c.TopN = getEnvInt("MOVIEKIT_TOP_N", c.TopN)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
