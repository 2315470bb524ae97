package history

import (
	"fmt"
)

// BuildTrendReport derives per-run violation deltas from a run series.
// Improving means the last run has fewer violations than the first.
func BuildTrendReport(runs []Run) (TrendReport, error) {
	if len(runs) == 0 {
		return TrendReport{}, fmt.Errorf("no runs available")
	}

	points := make([]TrendPoint, 0, len(runs))
	for i, current := range runs {
		point := TrendPoint{
			Timestamp:      current.Timestamp,
			ViolationCount: current.ViolationCount,
		}
		if i > 0 {
			point.DeltaViolations = current.ViolationCount - runs[i-1].ViolationCount
		}
		points = append(points, point)
	}

	return TrendReport{
		Since:     runs[0].Timestamp,
		Until:     runs[len(runs)-1].Timestamp,
		RunCount:  len(points),
		Improving: runs[len(runs)-1].ViolationCount < runs[0].ViolationCount,
		Points:    points,
	}, nil
}
