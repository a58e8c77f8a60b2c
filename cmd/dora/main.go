// # cmd/dora/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dora/internal/config"
	"dora/internal/history"
	"dora/internal/match"
	"dora/internal/observability"
	"dora/internal/render"
)

var (
	typePattern = flag.String("type", "", "Type expression to search for (empty matches everything)")
	matchMode   = flag.String("mode", "", "Match mode: structural, substring or exact")
	configPath  = flag.String("config", "", "Path to config file")
	noColor     = flag.Bool("no-color", false, "Disable ANSI colors in output")
	watch       = flag.Bool("watch", false, "Re-run the search when watched files change")
	ui          = flag.Bool("ui", false, "Enable terminal UI mode")
	showHistory = flag.Bool("history", false, "Print recent search runs and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("dora v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stderr
	if *ui {
		// In UI mode, avoid terminal logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
			if err == nil {
				output = f
			} else {
				fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
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
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		cfg.Paths = flag.Args()
	}
	if *matchMode != "" {
		cfg.Search.Mode = *matchMode
	}
	if *noColor {
		cfg.Output.Color = "never"
	}

	if *showHistory {
		if err := printRecentRuns(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		os.Exit(0)
	}

	mode, ok := match.ParseMode(cfg.Search.Mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown match mode %q\n", cfg.Search.Mode)
		os.Exit(1)
	}

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint, VERSION)
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing(ctx)

	app, err := NewApp(cfg, mode, *typePattern)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	results, err := app.Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if !*watch && !*ui {
		app.Print(results)
		os.Exit(0)
	}

	// Watch and UI modes keep running; the metrics server only makes sense
	// for a long-lived process.
	if cfg.Observability.MetricsAddr != "" {
		srv := observability.NewServer(cfg.Observability.MetricsAddr)
		if err := srv.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
		}
		defer srv.Stop(ctx)
	}

	if !*ui {
		app.Print(results)
	}

	if err := app.StartWatcher(ctx); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := app.RunUI(results); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
		return
	}

	// Block forever
	select {}
}

func printRecentRuns(cfg *config.Config) error {
	if cfg.History.Path == "" {
		return fmt.Errorf("history is not configured; set history.path in %s", config.DefaultPath)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(20)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	for _, run := range runs {
		pattern := run.Pattern
		if pattern == "" {
			pattern = "(all)"
		}
		fmt.Printf("%s  %-20q %-10s %4d files %5d occurrences  %s\n",
			run.Timestamp.Format(time.RFC3339), pattern, run.Mode,
			run.FileCount, run.OccurrenceCount, run.Duration)
	}
	return nil
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dora", "dora.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "dora", "dora.log")
	}

	return "dora.log"
}

func colorMode(cfg *config.Config) render.ColorMode {
	switch cfg.Output.Color {
	case "always":
		return render.ColorAlways
	case "never":
		return render.ColorNever
	default:
		return render.ColorAuto
	}
}
