package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"newsprint/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFiles(t *testing.T, tmpDir string) {
	// A class whose helper is declared before its caller.
	badTS := `class CountDowner {
	tick() {
		this.render();
	}

	start() {
		this.tick();
	}
}`
	err := os.WriteFile(filepath.Join(tmpDir, "count_downer.ts"), []byte(badTS), 0644)
	require.NoError(t, err)

	goodPy := `class Greeter:
    def greet(self):
        return self.name()

    def name(self):
        return "world"
`
	err = os.WriteFile(filepath.Join(tmpDir, "greeter.py"), []byte(goodPy), 0644)
	require.NoError(t, err)

	// Not a supported language, must be skipped.
	err = os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("ignore me"), 0644)
	require.NoError(t, err)
}

func TestFullPipelineIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	createTestFiles(t, tmpDir)

	cfg := config.Default()
	cfg.Paths = []string{tmpDir}
	cfg.Output.SARIF = filepath.Join(tmpDir, "out", "report.sarif")
	cfg.Output.Markdown = filepath.Join(tmpDir, "out", "report.md")
	cfg.Output.TSV = filepath.Join(tmpDir, "out", "violations.tsv")
	cfg.Output.DOT = filepath.Join(tmpDir, "out", "scopes.dot")
	cfg.History.Path = filepath.Join(tmpDir, "history.db")

	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	err = app.InitialScan(context.Background())
	require.NoError(t, err)

	fileCount, scopeCount := app.counts()
	assert.Equal(t, 2, fileCount)
	assert.GreaterOrEqual(t, scopeCount, 2)

	violations := app.Violations()
	require.Len(t, violations, 1)
	assert.Equal(t, "CountDowner", violations[0].ScopeName)

	require.NoError(t, app.GenerateOutputs())
	for _, path := range []string{cfg.Output.SARIF, cfg.Output.Markdown, cfg.Output.TSV, cfg.Output.DOT} {
		_, err := os.Stat(path)
		assert.NoError(t, err, "expected output file %s", path)
	}

	require.NoError(t, app.SaveRun())

	report, err := app.TrendReport()
	require.NoError(t, err)
	assert.Equal(t, 1, report.RunCount)

	// Fix the ordering and make sure the violation clears on re-process.
	fixedTS := `class CountDowner {
	start() {
		this.tick();
	}

	tick() {
		this.render();
	}
}`
	err = os.WriteFile(filepath.Join(tmpDir, "count_downer.ts"), []byte(fixedTS), 0644)
	require.NoError(t, err)

	app.HandleChanges([]string{filepath.Join(tmpDir, "count_downer.ts")})
	assert.Empty(t, app.Violations())
}

func TestScanDirectories_Excludes(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "node_modules", "dep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "node_modules", "dep", "index.js"), []byte("function a() {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "app.js"), []byte("function a() {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "app.min.js"), []byte("function a() {}"), 0644))

	cfg := config.Default()
	cfg.Paths = []string{tmpDir}
	cfg.Exclude.Files = []string{"*.min.js"}

	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	files, err := app.ScanDirectories(cfg.Paths, cfg.Exclude.Dirs, cfg.Exclude.Files)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(tmpDir, "app.js"), files[0])
}
