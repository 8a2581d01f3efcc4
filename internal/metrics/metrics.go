package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var initOnce sync.Once

// Run metrics
var (
	// FilesDeletedTotal counts files actually removed
	FilesDeletedTotal prometheus.Counter

	// FilesSkippedTotal counts skipped files by reason
	// (not_found, read_only, declined)
	FilesSkippedTotal *prometheus.CounterVec

	// DeleteFailuresTotal counts deletes the filesystem rejected
	DeleteFailuresTotal prometheus.Counter

	// BytesDeletedTotal counts bytes reclaimed by deletions
	BytesDeletedTotal prometheus.Counter

	// PromptsTotal counts interactive confirmations by answer (yes, no)
	PromptsTotal *prometheus.CounterVec

	// RunDuration tracks how long a full invocation takes
	RunDuration prometheus.Histogram
)

// Init registers all metrics with Prometheus.
// Safe to call multiple times (uses sync.Once).
func Init() {
	initOnce.Do(func() {
		FilesDeletedTotal = NewCounter(
			"cpmrm_files_deleted_total",
			"Total number of files deleted.",
		)

		FilesSkippedTotal = NewCounterVec(
			"cpmrm_files_skipped_total",
			"Total number of files skipped, by reason.",
			[]string{"reason"},
		)

		DeleteFailuresTotal = NewCounter(
			"cpmrm_delete_failures_total",
			"Total number of delete operations rejected by the filesystem.",
		)

		BytesDeletedTotal = NewBytesCounter(
			"cpmrm_bytes_deleted_total",
			"Total bytes reclaimed by deletions.",
		)

		PromptsTotal = NewCounterVec(
			"cpmrm_prompts_total",
			"Interactive confirmations answered, by answer.",
			[]string{"answer"},
		)

		RunDuration = NewDurationHistogram(
			"cpmrm_run_duration_seconds",
			"Duration of a full invocation in seconds.",
		)

		prometheus.MustRegister(
			FilesDeletedTotal,
			FilesSkippedTotal,
			DeleteFailuresTotal,
			BytesDeletedTotal,
			PromptsTotal,
			RunDuration,
		)

		// Pre-populate the skip labels so a clean run still exposes them
		for _, reason := range []string{"not_found", "read_only", "declined"} {
			FilesSkippedTotal.WithLabelValues(reason)
		}
	})
}

// WriteTextfile dumps the current metric values in the text exposition
// format for a node-exporter textfile collector. A one-shot process
// has no listener to scrape, so this replaces an HTTP endpoint.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
