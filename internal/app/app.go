package app

import (
	"context"
	"fmt"
	"io"

	"brqwen/internal/config"
	"brqwen/internal/logger"
	"brqwen/internal/qwen"
)

const (
	DemoQuestion = "What is 2+2? Just say the number."
	DemoTask     = "fibonacci sequence"
)

// App 持有配置与网关客户端，负责日志输出的生命周期。
type App struct {
	cfg     *config.Config
	gateway qwen.Gateway
	cleanup func()
}

// NewApp 根据配置构建应用对象；用完需调用 Close。
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	app, cleanup, err := buildAppWithWire(cfg)
	if err != nil {
		return nil, err
	}
	app.cleanup = cleanup
	logger.Debugf("%s", newStartupSummary(cfg).String())
	return app, nil
}

func (a *App) Gateway() qwen.Gateway  { return a.gateway }
func (a *App) Config() *config.Config { return a.cfg }

func (a *App) Close() {
	if a == nil || a.cleanup == nil {
		return
	}
	a.cleanup()
	a.cleanup = nil
}

// RunDemo asks the demo question, prints the answer, then requests and
// prints the demo code. A failing ask stops before the code request.
func (a *App) RunDemo(ctx context.Context, w io.Writer) error {
	if a == nil || a.gateway == nil {
		return fmt.Errorf("app not initialized")
	}
	answer, err := a.gateway.Ask(ctx, DemoQuestion)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, answer); err != nil {
		return err
	}
	code, err := a.gateway.Code(ctx, DemoTask, "")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, code)
	return err
}
