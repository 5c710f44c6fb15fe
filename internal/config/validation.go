package config

import (
	"fmt"
	"net/url"

	"brqwen/internal/logger"
)

func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.Gateway.validate(); err != nil {
		return err
	}
	if c.Model.Default == "" {
		return fmt.Errorf("model.default cannot be empty")
	}
	return nil
}

func (a *AppConfig) validate() error {
	if _, ok := logger.ParseLevel(a.LogLevel); !ok {
		return fmt.Errorf("app.log_level %q is not one of debug|info|warn|error", a.LogLevel)
	}
	return nil
}

func (g *GatewayConfig) validate() error {
	u, err := url.Parse(g.BaseURL)
	if err != nil {
		return fmt.Errorf("gateway.base_url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("gateway.base_url must use http or https (got %q)", g.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("gateway.base_url is missing a host (got %q)", g.BaseURL)
	}
	timeouts := []struct {
		key string
		val int
	}{
		{"gateway.chat_timeout_seconds", g.ChatTimeoutSeconds},
		{"gateway.vision_timeout_seconds", g.VisionTimeoutSeconds},
		{"gateway.embed_timeout_seconds", g.EmbedTimeoutSeconds},
	}
	for _, t := range timeouts {
		if t.val <= 0 {
			return fmt.Errorf("%s must be > 0", t.key)
		}
	}
	return nil
}
