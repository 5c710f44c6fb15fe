package config

import (
	"strings"

	"brqwen/internal/qwen"
)

const (
	defaultAppLogLevel          = "info"
	defaultChatTimeoutSeconds   = 60
	defaultVisionTimeoutSeconds = 120
	defaultEmbedTimeoutSeconds  = 60
)

// applyDefaults 只为未显式设置的键填充默认值；显式写成 0 的值交给 validate 拒绝。
func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.Gateway.applyDefaults(keys)
	c.Model.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		stringFieldDefault("app.log_level", &a.LogLevel, defaultAppLogLevel),
	)
}

func (g *GatewayConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		stringFieldDefault("gateway.base_url", &g.BaseURL, qwen.DefaultBaseURL),
		intFieldDefault("gateway.chat_timeout_seconds", &g.ChatTimeoutSeconds, defaultChatTimeoutSeconds),
		intFieldDefault("gateway.vision_timeout_seconds", &g.VisionTimeoutSeconds, defaultVisionTimeoutSeconds),
		intFieldDefault("gateway.embed_timeout_seconds", &g.EmbedTimeoutSeconds, defaultEmbedTimeoutSeconds),
	)
}

func (m *ModelConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		stringFieldDefault("model.default", &m.Default, qwen.DefaultModel),
	)
}

type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key:   key,
		need:  func() bool { return strings.TrimSpace(*target) == "" },
		apply: func() { *target = def },
	}
}

func intFieldDefault(key string, target *int, def int) fieldDefault {
	return fieldDefault{
		key:   key,
		need:  func() bool { return *target <= 0 },
		apply: func() { *target = def },
	}
}
