package models

import (
	"fmt"
	"time"
)

// boundaryLayout encodes a window boundary into file-system safe form,
// e.g. 20180321T010203Z.
const boundaryLayout = "20060102T150405Z"

// TimeWindow is the reporting period. Membership is strictly exclusive on
// both ends: a timestamp equal to Start or End is outside the window. The
// same rule applies to remote object keys, staged archive names and
// individual log records.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start.UTC(), End: end.UTC()}
}

// Contains reports whether t lies strictly inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return t.After(w.Start) && t.Before(w.End)
}

func (w TimeWindow) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("window boundaries must be set")
	}
	if !w.Start.Before(w.End) {
		return fmt.Errorf("window start %s must be before end %s", w.Start, w.End)
	}
	return nil
}

// String renders the window boundaries for use in report paths, so re-runs
// with an identical window target the same file.
func (w TimeWindow) String() string {
	return w.Start.UTC().Format(boundaryLayout) + "-" + w.End.UTC().Format(boundaryLayout)
}

// Dates returns every calendar date covered by the window, inclusive on
// both ends, at midnight UTC.
func (w TimeWindow) Dates() []time.Time {
	start := w.Start.UTC().Truncate(24 * time.Hour)
	end := w.End.UTC().Truncate(24 * time.Hour)

	var dates []time.Time
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dates = append(dates, date)
	}
	return dates
}
