package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"newsprint/internal/config"
	"newsprint/internal/history"
	"newsprint/internal/observability"
)

var (
	configPath = flag.String("config", "./newsprint.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run single scan and exit")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode")
	trends     = flag.Bool("trends", false, "Print violation trend report from history and exit")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("newsprint v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
				if err == nil {
					output = f
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./newsprint.toml" {
			cfg, err = config.Load("./newsprint.example.toml")
		}
		if err != nil {
			slog.Warn("no config file found, using defaults", "path", *configPath)
			cfg = config.Default()
		}
	}

	if flag.NArg() > 0 {
		cfg.Paths = []string{flag.Arg(0)}
	}

	ctx := context.Background()

	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Warn("failed to set up tracing", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if *trends {
		report, err := app.TrendReport()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Print(formatTrendReport(report))
		os.Exit(0)
	}

	if cfg.Observability.MetricsAddr != "" {
		srv := observability.NewServer(cfg.Observability.MetricsAddr, app.Health)
		if err := srv.Start(); err != nil {
			slog.Warn("failed to start observability server", "error", err)
		}
	}

	// Initial scan
	if err := app.InitialScan(ctx); err != nil {
		slog.Error("initial scan failed", "error", err)
		os.Exit(1)
	}

	if err := app.GenerateOutputs(); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}
	if err := app.SaveRun(); err != nil {
		slog.Warn("failed to save run history", "error", err)
	}

	if !*ui {
		fileCount, _ := app.counts()
		app.PrintSummary(fileCount, 0)
	}

	if *once {
		if len(app.Violations()) > 0 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Watch mode
	if err := app.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := app.RunUI(); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

func formatTrendReport(report history.TrendReport) string {
	var b strings.Builder

	b.WriteString("Violation Trend\n")
	b.WriteString("===============\n")
	b.WriteString(fmt.Sprintf("Runs: %d (%s to %s)\n",
		report.RunCount,
		report.Since.Local().Format("2006-01-02 15:04"),
		report.Until.Local().Format("2006-01-02 15:04")))
	if report.Improving {
		b.WriteString("Direction: improving\n")
	} else {
		b.WriteString("Direction: not improving\n")
	}
	b.WriteString("\n")

	for _, p := range report.Points {
		b.WriteString(fmt.Sprintf("%s  violations=%d  delta=%+d\n",
			p.Timestamp.Local().Format("2006-01-02 15:04:05"), p.ViolationCount, p.DeltaViolations))
	}

	return b.String()
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "newsprint", "newsprint.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "newsprint", "newsprint.log")
	}

	return "newsprint.log"
}
