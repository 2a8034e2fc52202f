package downloaders

import (
	"elb-stats/internal/shared/metrics"
)

var (
	// metricFilesDownloadedTotal counts archives fetched from the object
	// store, by logical source.
	metricFilesDownloadedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDownload,
			Name:      "files_downloaded_total",
		},
		[]string{"source"},
	)

	// metricFilesSkippedTotal counts archives already staged by an earlier
	// run and not re-fetched.
	metricFilesSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDownload,
			Name:      "files_skipped_total",
		},
		[]string{"source"},
	)
)
