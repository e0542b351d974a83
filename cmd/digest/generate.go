package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"devops-digest/config"
	"devops-digest/render"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a digest report once and exit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Report type: daily, weekly, tri-daily",
				Value:   reportDaily,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file",
				Value:   "./sources.yml",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Print the report to stdout instead of writing a file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reportType := cmd.String("type")
			if !validReportType(reportType) {
				return fmt.Errorf("invalid report type %q: must be daily, weekly, or tri-daily", reportType)
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			configureLogging(cfg.LogLevel)

			outputDir := cfg.OutputDir
			if dir := cmd.String("output"); dir != "" {
				outputDir = dir
			}

			return runGenerate(ctx, cfg, reportType, outputDir, cmd.Bool("stdout"))
		},
	}
}

func runGenerate(ctx context.Context, cfg config.Config, reportType, outputDir string, toStdout bool) error {
	p := newPipeline(cfg)

	start := time.Now()
	d := p.run(ctx, reportType, start.UTC())
	slog.Info("digest composed",
		"type", reportType,
		"articles", d.Stats.ArticleCount,
		"releases", d.Stats.ReleaseCount,
		"stories", d.Stats.StoryCount,
		"elapsed", time.Since(start).Round(time.Millisecond).String())

	if toStdout {
		fmt.Fprint(os.Stdout, render.Markdown(d))
		return nil
	}

	path, err := writeReport(d, outputDir)
	if err != nil {
		return err
	}
	slog.Info("report written", "path", path)
	return nil
}
