package history

import "time"

const SchemaVersion = 1

// Run is one completed scan: how many files and scopes were checked
// and how many scopes diverged from canonical order.
type Run struct {
	ID              string    `json:"id"`
	SchemaVersion   int       `json:"schema_version"`
	Timestamp       time.Time `json:"timestamp"`
	FileCount       int       `json:"file_count"`
	ScopeCount      int       `json:"scope_count"`
	ViolationCount  int       `json:"violation_count"`
	MismatchedCount int       `json:"mismatched_count"`
}

type TrendPoint struct {
	Timestamp       time.Time `json:"timestamp"`
	ViolationCount  int       `json:"violation_count"`
	DeltaViolations int       `json:"delta_violations"`
}

type TrendReport struct {
	Since     time.Time    `json:"since"`
	Until     time.Time    `json:"until"`
	RunCount  int          `json:"run_count"`
	Improving bool         `json:"improving"`
	Points    []TrendPoint `json:"points"`
}
