package app

import (
	"fmt"
	"strings"

	"brqwen/internal/config"
	"brqwen/internal/qwen"
)

type StartupSummary struct {
	GatewayURL  string
	ChatModel   string
	VisionModel string
	EmbedModel  string
	Timeouts    qwen.Timeouts
	GatewayLog  string
}

func newStartupSummary(cfg *config.Config) StartupSummary {
	return StartupSummary{
		GatewayURL:  cfg.Gateway.BaseURL,
		ChatModel:   cfg.Model.Default,
		VisionModel: qwen.VisionModel,
		EmbedModel:  qwen.EmbedModel,
		Timeouts:    cfg.Gateway.Timeouts(),
		GatewayLog:  cfg.App.GatewayLogPath,
	}
}

func (s StartupSummary) String() string {
	dump := s.GatewayLog
	if dump == "" {
		dump = "-"
	}
	return strings.Join([]string{
		"启动配置摘要:",
		fmt.Sprintf("- 网关：%s", s.GatewayURL),
		fmt.Sprintf("- 模型：chat=%s, vision=%s, embed=%s", s.ChatModel, s.VisionModel, s.EmbedModel),
		fmt.Sprintf("- 超时：chat=%s, vision=%s, embed=%s", s.Timeouts.Chat, s.Timeouts.Vision, s.Timeouts.Embed),
		fmt.Sprintf("- 往返转储：%s", dump),
	}, "\n")
}
