// Command digest generates DevOps monitoring digests from RSS feeds,
// GitHub releases, and Hacker News, either on demand or on a schedule.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()

	appl := &cli.Command{
		Name:  "digest",
		Usage: "DevOps monitoring digest generator",
		Commands: []*cli.Command{
			generateCommand(),
			serveCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}

// configureLogging replaces the default logger with one honoring the
// configured level. Unknown levels keep the info default.
func configureLogging(level string) {
	var opts *slog.HandlerOptions
	switch level {
	case "debug":
		opts = &slog.HandlerOptions{Level: slog.LevelDebug}
	case "warn":
		opts = &slog.HandlerOptions{Level: slog.LevelWarn}
	case "error":
		opts = &slog.HandlerOptions{Level: slog.LevelError}
	default:
		return
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, opts)))
}
