package main

import (
	"context"
	"fmt"
	"strings"

	"brqwen/internal/app"
	"brqwen/internal/config"
	"brqwen/internal/logger"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "brqwen",
		Short: "Talk to the BlackRoad model gateway",
		Long: "brqwen forwards chat, vision, code and embedding requests to the model gateway " +
			"($BLACKROAD_GATEWAY_URL, default http://127.0.0.1:8787). Without a subcommand it runs a short demo.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.RunDemo(ctx, cmd.OutOrStdout())
			})
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $BRQWEN_CONFIG or "+config.DefaultPath+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override app.log_level (debug|info|warn|error)")

	root.AddCommand(
		newAskCmd(opts),
		newCodeCmd(opts),
		newVisionCmd(opts),
		newEmbedCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	path, err := config.ResolvePath(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		if _, ok := logger.ParseLevel(o.logLevel); !ok {
			return nil, fmt.Errorf("--log-level %q is not one of debug|info|warn|error", o.logLevel)
		}
		cfg.App.LogLevel = strings.ToLower(strings.TrimSpace(o.logLevel))
	}
	return cfg, nil
}

func (o *rootOptions) withApp(cmd *cobra.Command, fn func(context.Context, *app.App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	a, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	defer a.Close()
	return fn(cmd.Context(), a)
}
