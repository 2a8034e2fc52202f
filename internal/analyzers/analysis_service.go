package analyzers

import (
	"context"
	"strings"

	"elb-stats/internal/models"
	"elb-stats/internal/shared/loggers"
	"elb-stats/internal/shared/progress"
	"elb-stats/internal/streams"
)

const stageAnalyze = "analyze"

// excludedURLSubstring drops internal corpus traffic from the report
// regardless of timestamp.
const excludedURLSubstring = "content/corpus"

// progressEvery bounds how often the (already rate-limited) reporter is
// even consulted during the aggregation pass.
const progressEvery = 1000

//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// Analyze runs one full pass over the sealed record stream and returns
	// the aggregated report. The stream is rewound first, so a prior
	// partial read by the caller does not skew counts.
	Analyze(ctx context.Context, window models.TimeWindow, stream *streams.RecordStream) (*models.StatsReport, error)
}

type analysisService struct {
	reporter progress.Reporter
}

func NewAnalysisService(reporter progress.Reporter) AnalysisService {
	return &analysisService{reporter: reporter}
}

func (s *analysisService) Analyze(ctx context.Context, window models.TimeWindow, stream *streams.RecordStream) (*models.StatsReport, error) {
	logger := loggers.Ctx(ctx)

	if err := stream.Rewind(); err != nil {
		return nil, errInternalRecordStreamFailed(err)
	}

	aggregator := NewAggregator()
	processed, counted := 0, 0
	for {
		condensed, ok, err := stream.Next()
		if err != nil {
			return nil, errInternalRecordStreamFailed(err)
		}
		if !ok {
			break
		}
		processed++
		if processed%progressEvery == 0 {
			s.reporter.Report(stageAnalyze, processed, stream.Len())
		}

		record, err := models.ParseLogRecord(condensed)
		if err != nil {
			return nil, errInvalidRecord(err)
		}

		if !window.Contains(record.LoggedAt) {
			metricRecordsExcludedTotal.WithLabelValues(reasonOutOfWindow).Inc()
			continue
		}
		if strings.Contains(record.URL, excludedURLSubstring) {
			metricRecordsExcludedTotal.WithLabelValues(reasonExcludedURL).Inc()
			continue
		}

		service := ClassifyService(record.URL)
		aggregator.Add(models.AggregationKey{
			Service: service,
			Method:  record.Method,
			URL:     NormalizeURL(record.URL),
		})
		counted++
		metricRecordsCountedTotal.WithLabelValues(service).Inc()
	}
	s.reporter.Done(stageAnalyze, processed, 0)

	logger.Debug().Msgf("aggregated %d of %d records", counted, processed)
	return &models.StatsReport{Window: window, Rows: aggregator.Rows()}, nil
}
