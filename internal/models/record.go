package models

import (
	"fmt"
	"strings"
	"time"
)

// RecordTimestampLayout is the timestamp format of a raw ELB log line
// (ISO-8601 with microsecond precision, UTC).
const RecordTimestampLayout = "2006-01-02T15:04:05.000000Z"

// LogRecord is the condensed form of one access-log line: only the fields
// the analyzer needs survive extraction.
type LogRecord struct {
	LoggedAt time.Time
	Method   string
	URL      string
}

// ParseLogRecord parses the condensed wire form "<timestamp> <method> <url>"
// produced by the parser stage.
func ParseLogRecord(condensed string) (*LogRecord, error) {
	fields := strings.Fields(condensed)
	if len(fields) != 3 {
		return nil, fmt.Errorf("condensed record must have 3 fields, got %d: %q", len(fields), condensed)
	}

	loggedAt, err := time.Parse(RecordTimestampLayout, fields[0])
	if err != nil {
		return nil, fmt.Errorf("invalid record timestamp %q: %w", fields[0], err)
	}

	return &LogRecord{
		LoggedAt: loggedAt,
		Method:   fields[1],
		URL:      fields[2],
	}, nil
}

// Condensed renders the record in its wire form.
func (r *LogRecord) Condensed() string {
	return r.LoggedAt.UTC().Format(RecordTimestampLayout) + " " + r.Method + " " + r.URL
}
