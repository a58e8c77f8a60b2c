// # cmd/dora/app.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dora/internal/config"
	"dora/internal/history"
	"dora/internal/match"
	"dora/internal/parser"
	"dora/internal/render"
	"dora/internal/resolver"
	"dora/internal/traverse"
	"dora/internal/watcher"
)

type App struct {
	Config    *config.Config
	Parser    *parser.Parser
	Resolver  *resolver.Resolver
	Traverser *traverse.Traverser
	Formatter *render.Formatter

	pattern string
	mode    match.Mode

	store      *history.Store
	teaProgram *tea.Program
	fileWatch  *watcher.Watcher
}

func NewApp(cfg *config.Config, mode match.Mode, pattern string) (*App, error) {
	loader := parser.NewGrammarLoader()

	p := parser.NewParser(loader)
	p.RegisterIndexer("python", &parser.PythonIndexer{EmitParts: cfg.Search.EmitParts})

	registry := resolver.DefaultRegistry().Merge(cfg.Packages)
	res := resolver.NewResolver(registry, cfg.Search.StdlibExtra)

	app := &App{
		Config:    cfg,
		Parser:    p,
		Resolver:  res,
		Traverser: traverse.New(p, res, os.Stderr),
		Formatter: render.NewFormatter(os.Stdout, colorMode(cfg)),
		pattern:   pattern,
		mode:      mode,
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		app.store = store
	}

	return app, nil
}

func (a *App) Close() {
	if a.fileWatch != nil {
		_ = a.fileWatch.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
}

// Run performs one full search over the configured paths.
func (a *App) Run(ctx context.Context) ([]traverse.Result, error) {
	start := time.Now()

	files, err := traverse.CollectFiles(a.Config.Paths, a.Config.Exclude.Dirs, a.Config.Exclude.Files, os.Stderr)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		fmt.Println("No Python files found.")
		return nil, nil
	}

	results := a.Traverser.Search(ctx, files, a.pattern, a.mode)
	slog.Debug("search complete", "files", len(files), "results", len(results), "duration", time.Since(start))

	if a.store != nil {
		run := history.Run{
			Roots:           a.Config.Paths,
			Pattern:         a.pattern,
			Mode:            string(a.mode),
			FileCount:       len(files),
			OccurrenceCount: len(results),
			Duration:        time.Since(start),
		}
		if err := a.store.SaveRun(run); err != nil {
			slog.Warn("failed to record run", "error", err)
		}
	}

	return results, nil
}

func (a *App) Print(results []traverse.Result) {
	a.Formatter.WriteResults(results)
}

// HandleChanges re-runs the whole search. Results depend on cross-file
// reachability, so one changed file can affect matches anywhere.
func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))
	start := time.Now()

	results, err := a.Run(context.Background())
	if err != nil {
		slog.Error("re-run failed", "error", err)
		return
	}

	if a.teaProgram != nil {
		a.teaProgram.Send(updateMsg{
			results:    results,
			changed:    len(paths),
			duration:   time.Since(start),
			lastUpdate: time.Now(),
		})
		return
	}

	a.Print(results)
}

func (a *App) StartWatcher(ctx context.Context) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Watch.MaxRunsPerSecond,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	a.fileWatch = w
	// Note: the watcher runs for the lifetime of the process.
	return w.Watch(a.Config.Paths)
}

func (a *App) RunUI(initial []traverse.Result) error {
	m := initialModel(a.pattern)
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	go func() {
		a.teaProgram.Send(updateMsg{
			results:    initial,
			lastUpdate: time.Now(),
		})
	}()

	_, err := p.Run()
	return err
}
