package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "newsprint_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FilesParsedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsprint_files_parsed_total",
		Help: "Total number of source files parsed.",
	}, []string{"language"})

	ScopesCheckedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsprint_scopes_checked_total",
		Help: "Total number of class/file scopes validated.",
	}, []string{"scope_kind"})

	CheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsprint_check_seconds",
		Help:    "Time spent validating the ordering of one file.",
		Buckets: prometheus.DefBuckets,
	})

	ViolationsCurrent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "newsprint_violations_current",
		Help: "Number of ordering violations in the last completed scan.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsprint_watcher_events_total",
		Help: "Total number of file system change batches processed.",
	})
)
