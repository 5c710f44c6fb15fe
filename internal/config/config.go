package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"brqwen/internal/qwen"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// PathEnv names an explicit config file.
	PathEnv = "BRQWEN_CONFIG"
	// DefaultPath is read when present; its absence is not an error.
	DefaultPath = "configs/brqwen.yaml"
)

// ResolvePath picks the config file to load: explicit flag, then $BRQWEN_CONFIG,
// then DefaultPath if it exists. An empty result means "defaults only".
func ResolvePath(explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(os.Getenv(PathEnv)); p != "" {
		return p, nil
	}
	if _, err := os.Stat(DefaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return DefaultPath, nil
}

// Load 读取 yaml 配置（path 为空时只用默认值），叠加 BLACKROAD_GATEWAY_URL，最后校验。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	// 与 qwen.BaseURLFromEnv 一致：空白值视为未设置。
	if strings.TrimSpace(os.Getenv(qwen.GatewayURLEnv)) != "" {
		if err := v.BindEnv("gateway.base_url", qwen.GatewayURLEnv); err != nil {
			return nil, fmt.Errorf("binding %s failed: %w", qwen.GatewayURLEnv, err)
		}
	}
	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	setKeys := make(keySet)
	collectSettingsKeys(v.AllSettings(), setKeys)
	cfg.applyDefaults(setKeys)
	cfg.normalize()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func collectSettingsKeys(settings map[string]any, dest keySet) {
	if dest == nil || len(settings) == 0 {
		return
	}
	flattenConfigKeys("", settings, dest)
}

func flattenConfigKeys(prefix string, node any, dest keySet) {
	switch val := node.(type) {
	case map[string]any:
		for k, v := range val {
			next := strings.ToLower(strings.TrimSpace(k))
			if next == "" {
				continue
			}
			if prefix != "" {
				next = prefix + "." + next
			}
			flattenConfigKeys(next, v, dest)
		}
	default:
		if prefix != "" {
			dest.mark(prefix)
		}
	}
}
