package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"newsprint/internal/order"
)

const driverName = "sqlite"

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun records a completed scan plus its violations and returns the
// generated run ID.
func (s *Store) SaveRun(fileCount, scopeCount int, violations []*order.Violation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	mismatched := 0
	for _, v := range violations {
		mismatched += v.MismatchCount()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin run save: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO runs (id, schema_version, ts_utc, file_count, scope_count, violation_count, mismatched_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		SchemaVersion,
		time.Now().UTC().Format(time.RFC3339Nano),
		fileCount,
		scopeCount,
		len(violations),
		mismatched,
	)
	if err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, v := range violations {
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO violations (run_id, file, scope_kind, scope_name, line, mismatched)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID,
			v.Location.File,
			v.ScopeKind.String(),
			v.ScopeName,
			v.Location.Line,
			v.MismatchCount(),
		)
		if err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("insert violation for %s: %w", v.ScopeName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run save: %w", err)
	}
	return runID, nil
}

func (s *Store) LoadRuns(since time.Time) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
SELECT id, schema_version, ts_utc, file_count, scope_count, violation_count, mismatched_count
FROM runs
`
	args := make([]any, 0, 1)
	if !since.IsZero() {
		query += " WHERE ts_utc >= ?"
		args = append(args, since.UTC().Format(time.RFC3339Nano))
	}
	query += " ORDER BY ts_utc ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("load runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			run   Run
			tsRaw string
		)
		if err := rows.Scan(
			&run.ID,
			&run.SchemaVersion,
			&tsRaw,
			&run.FileCount,
			&run.ScopeCount,
			&run.ViolationCount,
			&run.MismatchedCount,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Timestamp, err = time.Parse(time.RFC3339Nano, tsRaw)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", tsRaw, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
