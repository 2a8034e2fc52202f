package progress

import (
	"time"

	"elb-stats/internal/shared/loggers"
)

// DefaultInterval is the minimum wall-clock gap between two Report
// emissions for the same reporter.
const DefaultInterval = time.Second

// Reporter receives incremental progress from each pipeline stage. Report
// may be dropped when called faster than the reporter's interval; Done is
// always emitted. A Reporter carries its own last-emission state and is
// injected into each stage; it is not safe for concurrent use, which the
// strictly sequential pipeline never needs.
type Reporter interface {
	Report(stage string, done, total int)
	Done(stage string, done, skipped int)
}

type rateLimitedReporter struct {
	logger   loggers.Logger
	interval time.Duration
	now      func() time.Time
	lastEmit time.Time
}

func NewReporter(logger loggers.Logger) Reporter {
	return newReporter(logger, DefaultInterval, time.Now)
}

// newReporter lets tests inject a fake clock.
func newReporter(logger loggers.Logger, interval time.Duration, now func() time.Time) *rateLimitedReporter {
	return &rateLimitedReporter{logger: logger, interval: interval, now: now}
}

func (r *rateLimitedReporter) Report(stage string, done, total int) {
	now := r.now()
	if !r.lastEmit.IsZero() && now.Sub(r.lastEmit) < r.interval {
		return
	}
	r.lastEmit = now

	r.logger.Info().
		Str(loggers.FieldStage, stage).
		Int(loggers.FieldDone, done).
		Int(loggers.FieldTotal, total).
		Msg("progress")
}

func (r *rateLimitedReporter) Done(stage string, done, skipped int) {
	event := r.logger.Info().
		Str(loggers.FieldStage, stage).
		Int(loggers.FieldDone, done)
	if skipped > 0 {
		event = event.Int("skipped", skipped)
	}
	event.Msg("stage complete")
}
