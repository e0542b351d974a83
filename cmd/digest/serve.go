package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"devops-digest/config"
	"devops-digest/scheduler"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run continuously, generating digests on the configured schedules",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file",
				Value:   "./sources.yml",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			configureLogging(cfg.LogLevel)
			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	p := newPipeline(cfg)

	sched, err := scheduler.New(cfg.Timezone)
	if err != nil {
		return err
	}

	task := func(reportType string) func() {
		return func() {
			d := p.run(ctx, reportType, time.Now().UTC())
			path, err := writeReport(d, cfg.OutputDir)
			if err != nil {
				slog.Error("scheduled run failed", "type", reportType, "error", err)
				return
			}
			slog.Info("scheduled report written", "type", reportType, "path", path,
				"items", d.Stats.TotalItems())
		}
	}

	if at := cfg.Schedules.Daily; at != "" {
		if err := sched.Schedule(reportDaily, at, task(reportDaily)); err != nil {
			return err
		}
	}
	if at := cfg.Schedules.Weekly; at != "" {
		if err := sched.ScheduleWeekly(reportWeekly, at, task(reportWeekly)); err != nil {
			return err
		}
	}
	for i, at := range cfg.Schedules.TriDaily {
		name := fmt.Sprintf("%s-%d", reportTriDaily, i)
		if err := sched.Schedule(name, at, task(reportTriDaily)); err != nil {
			return err
		}
	}

	sched.Start()
	slog.Info("scheduler started", "timezone", cfg.Timezone)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
	}

	sched.Stop()
	slog.Info("shutdown complete")
	return nil
}
