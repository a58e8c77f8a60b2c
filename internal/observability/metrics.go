package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dora_parse_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	})

	FilesParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dora_files_parsed_total",
		Help: "Total number of source files parsed and indexed.",
	})

	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dora_parse_failures_total",
		Help: "Total number of files skipped due to parse or read errors.",
	})

	OccurrencesFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dora_occurrences_found_total",
		Help: "Total number of occurrences that passed the search filter.",
	})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dora_search_seconds",
		Help:    "Time spent on one full cross-file search.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dora_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
