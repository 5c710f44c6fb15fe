package app

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"brqwen/internal/config"
	"brqwen/internal/logger"
	"brqwen/internal/qwen"
)

// logSinks 是日志与网关转储打开的文件。
type logSinks struct {
	files []*os.File
}

func provideLogSinks(cfg *config.Config) (*logSinks, func(), error) {
	logger.SetLevel(cfg.App.LogLevel)
	logger.EnableGatewayPayloadDump(cfg.App.DumpPayload)

	sinks := &logSinks{}
	cleanup := func() {
		logger.SetGatewayWriter(nil)
		logger.SetOutput(nil)
		log.SetOutput(os.Stderr)
		for _, f := range sinks.files {
			_ = f.Close()
		}
	}
	if cfg.App.LogPath != "" {
		f, err := openAppend(cfg.App.LogPath)
		if err != nil {
			return nil, nil, err
		}
		sinks.files = append(sinks.files, f)
		mw := io.MultiWriter(os.Stderr, f)
		log.SetOutput(mw)
		logger.SetOutput(mw)
	}
	if cfg.App.GatewayLogPath != "" {
		f, err := openAppend(cfg.App.GatewayLogPath)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sinks.files = append(sinks.files, f)
		logger.SetGatewayWriter(f)
	}
	return sinks, cleanup, nil
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func provideClient(cfg *config.Config) *qwen.Client {
	return qwen.New(cfg.Model.Default,
		qwen.WithBaseURL(cfg.Gateway.BaseURL),
		qwen.WithTimeouts(cfg.Gateway.Timeouts()),
	)
}

func provideApp(cfg *config.Config, gateway qwen.Gateway, _ *logSinks) *App {
	return &App{cfg: cfg, gateway: gateway}
}
