package analyzers

import (
	"elb-stats/internal/shared/metrics"
)

const (
	reasonOutOfWindow = "out_of_window"
	reasonExcludedURL = "excluded_url"
)

var (
	// metricRecordsCountedTotal counts records that made it into the
	// aggregation, by classified service ("" becomes the unlabeled bucket).
	metricRecordsCountedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalyze,
			Name:      "records_counted_total",
		},
		[]string{"service"},
	)

	// metricRecordsExcludedTotal counts records dropped before
	// aggregation, by reason.
	metricRecordsExcludedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalyze,
			Name:      "records_excluded_total",
		},
		[]string{"reason"},
	)
)
