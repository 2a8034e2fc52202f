package parsers

import (
	"elb-stats/internal/shared/metrics"
)

var (
	// metricArchivesParsedTotal counts staged archives decompressed and
	// extracted, by logical source.
	metricArchivesParsedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParse,
			Name:      "archives_parsed_total",
		},
		[]string{"source"},
	)

	// metricLinesExtractedTotal counts raw log lines condensed into the
	// record stream.
	metricLinesExtractedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParse,
			Name:      "lines_extracted_total",
		},
		[]string{"source"},
	)
)
