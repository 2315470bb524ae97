package history

import (
	"path/filepath"
	"testing"
	"time"

	"newsprint/internal/order"
	"newsprint/internal/parser"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadRuns(t *testing.T) {
	store := openTestStore(t)

	violation := &order.Violation{
		ScopeKind: parser.ScopeClass,
		ScopeName: "Warbler",
		Location:  parser.Location{File: "warbler.ts", Line: 3, Column: 1},
		Entries: []order.Entry{
			{Name: "firstMethod", Matches: false},
			{Name: "secondMethod", Matches: false},
		},
	}

	id, err := store.SaveRun(10, 4, []*order.Violation{violation})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("Expected a run ID")
	}

	if _, err := store.SaveRun(10, 4, nil); err != nil {
		t.Fatal(err)
	}

	runs, err := store.LoadRuns(time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ViolationCount != 1 || runs[0].MismatchedCount != 2 {
		t.Errorf("Unexpected first run counts: %+v", runs[0])
	}
	if runs[1].ViolationCount != 0 {
		t.Errorf("Expected clean second run, got %+v", runs[1])
	}
}

func TestBuildTrendReport(t *testing.T) {
	now := time.Now().UTC()
	runs := []Run{
		{Timestamp: now.Add(-2 * time.Hour), ViolationCount: 5},
		{Timestamp: now.Add(-time.Hour), ViolationCount: 3},
		{Timestamp: now, ViolationCount: 1},
	}

	report, err := BuildTrendReport(runs)
	if err != nil {
		t.Fatal(err)
	}
	if report.RunCount != 3 {
		t.Errorf("Expected 3 points, got %d", report.RunCount)
	}
	if !report.Improving {
		t.Error("Expected improving trend")
	}
	if report.Points[1].DeltaViolations != -2 {
		t.Errorf("Expected delta -2, got %d", report.Points[1].DeltaViolations)
	}

	if _, err := BuildTrendReport(nil); err == nil {
		t.Error("Expected error for empty run series")
	}
}
