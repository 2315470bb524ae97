package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"newsprint/internal/config"
	"newsprint/internal/history"
	"newsprint/internal/observability"
	"newsprint/internal/order"
	"newsprint/internal/output"
	"newsprint/internal/parser"
	"newsprint/internal/util"
	"newsprint/internal/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/attribute"
)

type App struct {
	Config     *config.Config
	Parser     *parser.Parser
	store      *history.Store
	limiter    *util.Limiter
	teaProgram *tea.Program

	mu         sync.Mutex
	files      map[string]*parser.File
	violations []*order.Violation
}

func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		Config:  cfg,
		Parser:  parser.NewParser(parser.NewGrammarLoader()),
		limiter: util.NewLimiter(cfg.Watch.ChecksPerSec, cfg.Watch.ChecksBurst),
		files:   make(map[string]*parser.File),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		a.store = store
	}

	return a, nil
}

func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func (a *App) InitialScan(ctx context.Context) error {
	ctx, span := observability.Tracer.Start(ctx, "initial_scan")
	defer span.End()

	files, err := a.ScanDirectories(a.Config.Paths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("files", len(files)))

	for _, filePath := range files {
		if err := a.ProcessFile(ctx, filePath); err != nil {
			slog.Warn("failed to process file", "path", filePath, "error", err)
		}
	}

	a.recheck(ctx)
	return nil
}

func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	var files []string

	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)

			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) || g.Match(path) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if parser.DetectLanguage(path) == "" {
				return nil
			}

			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (a *App) ProcessFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	start := time.Now()
	file, err := a.Parser.ParseFile(path, content)
	if err != nil {
		return err
	}
	observability.ParsingDuration.WithLabelValues(file.Language).Observe(time.Since(start).Seconds())
	observability.FilesParsedTotal.WithLabelValues(file.Language).Inc()

	a.mu.Lock()
	a.files[path] = file
	a.mu.Unlock()
	return nil
}

func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))
	observability.WatcherEventsTotal.Inc()
	start := time.Now()

	ctx, span := observability.Tracer.Start(context.Background(), "handle_changes")
	defer span.End()
	span.SetAttributes(attribute.Int("files", len(paths)))

	for _, path := range paths {
		if err := a.limiter.Wait(ctx, 1); err != nil {
			slog.Warn("rate limiter interrupted", "error", err)
			return
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			a.mu.Lock()
			delete(a.files, path)
			a.mu.Unlock()
			continue
		}

		if err := a.ProcessFile(ctx, path); err != nil {
			slog.Warn("failed to re-process file", "path", path, "error", err)
		}
	}

	violations := a.recheck(ctx)

	if err := a.GenerateOutputs(); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}
	if err := a.SaveRun(); err != nil {
		slog.Warn("failed to save run history", "error", err)
	}

	a.PrintSummary(len(paths), time.Since(start))

	if a.teaProgram != nil {
		fileCount, scopeCount := a.counts()
		a.teaProgram.Send(updateMsg{
			violations: violations,
			fileCount:  fileCount,
			scopeCount: scopeCount,
		})
	}
}

// recheck re-runs the order check on every tracked file and replaces
// the cached violation set.
func (a *App) recheck(ctx context.Context) []*order.Violation {
	_, span := observability.Tracer.Start(ctx, "order_check")
	defer span.End()

	a.mu.Lock()
	defer a.mu.Unlock()

	var violations []*order.Violation
	for _, path := range util.SortedStringKeys(a.files) {
		file := a.files[path]

		start := time.Now()
		fileViolations := order.CheckFile(file)
		observability.CheckDuration.Observe(time.Since(start).Seconds())

		for _, scope := range file.Scopes {
			observability.ScopesCheckedTotal.WithLabelValues(scope.Kind.String()).Inc()
		}
		violations = append(violations, fileViolations...)
	}

	observability.ViolationsCurrent.Set(float64(len(violations)))
	a.violations = violations
	return violations
}

func (a *App) Violations() []*order.Violation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*order.Violation(nil), a.violations...)
}

func (a *App) counts() (fileCount, scopeCount int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, f := range a.files {
		fileCount++
		scopeCount += len(f.Scopes)
	}
	return fileCount, scopeCount
}

func (a *App) GenerateOutputs() error {
	violations := a.Violations()
	fileCount, scopeCount := a.counts()

	if a.Config.Output.SARIF != "" {
		root, err := os.Getwd()
		if err != nil {
			root = "."
		}
		data, err := output.GenerateSARIF(root, violations)
		if err != nil {
			return err
		}
		if err := util.WriteFileWithDirs(a.Config.Output.SARIF, data, 0644); err != nil {
			return err
		}
	}

	if a.Config.Output.Markdown != "" {
		md, err := output.GenerateMarkdown(violations, fileCount, scopeCount)
		if err != nil {
			return err
		}
		if err := util.WriteFileWithDirs(a.Config.Output.Markdown, []byte(md), 0644); err != nil {
			return err
		}
	}

	if a.Config.Output.TSV != "" {
		tsv, err := output.GenerateTSV(violations)
		if err != nil {
			return err
		}
		if err := util.WriteFileWithDirs(a.Config.Output.TSV, []byte(tsv), 0644); err != nil {
			return err
		}
	}

	if a.Config.Output.DOT != "" {
		dot, err := output.GenerateDOT(a.allScopes(), violations)
		if err != nil {
			return err
		}
		if err := util.WriteFileWithDirs(a.Config.Output.DOT, []byte(dot), 0644); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) allScopes() []parser.ScopeDecl {
	a.mu.Lock()
	defer a.mu.Unlock()

	var scopes []parser.ScopeDecl
	for _, path := range util.SortedStringKeys(a.files) {
		scopes = append(scopes, a.files[path].Scopes...)
	}
	return scopes
}

func (a *App) TrendReport() (history.TrendReport, error) {
	if a.store == nil {
		return history.TrendReport{}, fmt.Errorf("history is not configured, set history.path in the config")
	}
	runs, err := a.store.LoadRuns(time.Time{})
	if err != nil {
		return history.TrendReport{}, err
	}
	return history.BuildTrendReport(runs)
}

func (a *App) SaveRun() error {
	if a.store == nil {
		return nil
	}
	fileCount, scopeCount := a.counts()
	_, err := a.store.SaveRun(fileCount, scopeCount, a.Violations())
	return err
}

func (a *App) PrintSummary(fileCount int, duration time.Duration) {
	violations := a.Violations()
	_, scopeCount := a.counts()

	fmt.Println(strings.Repeat("-", 40))
	if duration > 0 {
		fmt.Printf("Update: %d files, %d scopes in %v\n", fileCount, scopeCount, duration)
	} else {
		fmt.Printf("Scanned: %d files, %d scopes\n", fileCount, scopeCount)
	}

	if len(violations) == 0 {
		fmt.Println("✅ Every scope reads like a newspaper.")
		fmt.Println(strings.Repeat("-", 40))
		return
	}

	fmt.Printf("⚠️  FOUND %d ORDERING VIOLATIONS:\n", len(violations))
	for _, v := range violations {
		fmt.Printf("\n%s:%d\n%s\n", v.Location.File, v.Location.Line, v.Message())
	}
	fmt.Println(strings.Repeat("-", 40))
}

func (a *App) RunUI() error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	go func() {
		fileCount, scopeCount := a.counts()
		a.teaProgram.Send(updateMsg{
			violations: a.Violations(),
			fileCount:  fileCount,
			scopeCount: scopeCount,
		})
	}()

	_, err := p.Run()
	return err
}

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	// Runs for the lifetime of the process.
	return w.Watch(a.Config.Paths)
}

func (a *App) Health() observability.HealthStatus {
	fileCount, _ := a.counts()
	return observability.HealthStatus{
		Status:     "up",
		Files:      fileCount,
		Violations: len(a.Violations()),
	}
}
