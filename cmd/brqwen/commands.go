package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"brqwen/internal/app"
	"brqwen/internal/qwen"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var (
		system      string
		temperature float64
	)
	cmd := &cobra.Command{
		Use:   "ask <question>...",
		Short: "Send a chat message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				reply, err := a.Gateway().Chat(ctx, strings.Join(args, " "),
					qwen.WithSystem(system),
					qwen.WithTemperature(temperature),
				)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&system, "system", "", "system prompt")
	cmd.Flags().Float64Var(&temperature, "temperature", qwen.DefaultTemperature, "sampling temperature")
	return cmd
}

func newCodeCmd(opts *rootOptions) *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "code <task>...",
		Short: "Generate code for a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				out, err := a.Gateway().Code(ctx, strings.Join(args, " "), language)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", qwen.DefaultLanguage, "target language")
	return cmd
}

func newVisionCmd(opts *rootOptions) *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "vision <image>",
		Short: "Ask the vision model about an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				out, err := a.Gateway().AnalyzeImage(ctx, args[0], prompt)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "question about the image (default \""+qwen.DefaultImageQuestion+"\")")
	return cmd
}

func newEmbedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "embed <text>...",
		Short: "Print one JSON embedding vector per input text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				vectors, err := a.Gateway().Embed(ctx, args)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, v := range vectors {
					line, err := json.Marshal(v)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(line))
				}
				return nil
			})
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
