package config

import (
	"strings"
	"time"

	"brqwen/internal/qwen"
)

// Config 是 brqwen 的主配置载体；同一组 yaml 标签用于解析与输出。
type Config struct {
	App     AppConfig     `yaml:"app"`
	Gateway GatewayConfig `yaml:"gateway"`
	Model   ModelConfig   `yaml:"model"`
}

type AppConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogPath        string `yaml:"log_path"`
	GatewayLogPath string `yaml:"gateway_log_path"`
	DumpPayload    bool   `yaml:"dump_payload"`
}

// GatewayConfig 描述远端网关的地址与各操作的超时（秒）。
type GatewayConfig struct {
	BaseURL              string `yaml:"base_url"`
	ChatTimeoutSeconds   int    `yaml:"chat_timeout_seconds"`
	VisionTimeoutSeconds int    `yaml:"vision_timeout_seconds"`
	EmbedTimeoutSeconds  int    `yaml:"embed_timeout_seconds"`
}

// Timeouts converts the configured seconds for the client.
func (g GatewayConfig) Timeouts() qwen.Timeouts {
	return qwen.Timeouts{
		Chat:   time.Duration(g.ChatTimeoutSeconds) * time.Second,
		Vision: time.Duration(g.VisionTimeoutSeconds) * time.Second,
		Embed:  time.Duration(g.EmbedTimeoutSeconds) * time.Second,
	}
}

type ModelConfig struct {
	Default string `yaml:"default"`
}

func (c *Config) normalize() {
	c.App.LogLevel = strings.ToLower(strings.TrimSpace(c.App.LogLevel))
	c.App.LogPath = strings.TrimSpace(c.App.LogPath)
	c.App.GatewayLogPath = strings.TrimSpace(c.App.GatewayLogPath)
	c.Gateway.BaseURL = strings.TrimRight(strings.TrimSpace(c.Gateway.BaseURL), "/")
	c.Model.Default = strings.TrimSpace(c.Model.Default)
}

// keySet 记录配置文件/环境变量中显式出现过的键（小写、点分路径）。
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	_, ok := k[strings.ToLower(strings.TrimSpace(path))]
	return ok
}
