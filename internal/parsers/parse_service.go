package parsers

import (
	"bufio"
	"compress/gzip"
	"context"
	"path"
	"strings"

	"elb-stats/internal/models"
	"elb-stats/internal/shared/filestorages"
	"elb-stats/internal/shared/loggers"
	"elb-stats/internal/shared/progress"
	"elb-stats/internal/streams"
)

const stageParse = "parse"

// Field positions in a space-delimited ELB access-log line.
const (
	minLineFields  = 14
	timestampField = 1
	methodField    = 12
	urlField       = 13
)

// maxLineBytes bounds one raw log line; ELB request lines can run long.
const maxLineBytes = 1024 * 1024

//go:generate mockgen -source=parse_service.go -destination=./mocks/parse_service_mock.go -package=mocks
type ParseService interface {
	// Parse extracts condensed records from every staged archive whose
	// filename-embedded timestamp lies strictly inside the window. The
	// returned stream is sealed: the caller owns it, may rescan it from the
	// start any number of times, and must Close it.
	Parse(ctx context.Context, window models.TimeWindow, sources []models.Source) (*streams.RecordStream, error)
}

type parseService struct {
	staging  filestorages.FileStorage
	reporter progress.Reporter
}

func NewParseService(staging filestorages.FileStorage, reporter progress.Reporter) ParseService {
	return &parseService{staging: staging, reporter: reporter}
}

type stagedArchive struct {
	key    string
	source string
}

func (s *parseService) Parse(ctx context.Context, window models.TimeWindow, sources []models.Source) (*streams.RecordStream, error) {
	logger := loggers.Ctx(ctx)

	archives, err := s.archivesInWindow(ctx, window, sources)
	if err != nil {
		return nil, err
	}
	logger.Debug().Msgf("parsing %d staged archives", len(archives))

	stream, err := streams.NewRecordStream("")
	if err != nil {
		return nil, errInternalSpillFailed(err)
	}

	done := 0
	for _, archive := range archives {
		if err := s.extractArchive(ctx, stream, archive); err != nil {
			_ = stream.Close()
			return nil, err
		}
		metricArchivesParsedTotal.WithLabelValues(archive.source).Inc()
		done++
		s.reporter.Report(stageParse, done, len(archives))
	}
	s.reporter.Done(stageParse, done, 0)

	if err := stream.Seal(); err != nil {
		_ = stream.Close()
		return nil, errInternalSpillFailed(err)
	}
	return stream, nil
}

func (s *parseService) archivesInWindow(ctx context.Context, window models.TimeWindow, sources []models.Source) ([]stagedArchive, error) {
	var archives []stagedArchive
	for _, source := range sources {
		keys, err := s.staging.List(ctx, source.Dir, "*.gz")
		if err != nil {
			return nil, errInternalStagingFailed(err)
		}
		for _, key := range keys {
			t, err := models.TimestampFromName(path.Base(key))
			if err != nil {
				return nil, errInvalidArchiveTimestamp(key, err)
			}
			if window.Contains(t) {
				archives = append(archives, stagedArchive{key: key, source: source.Name})
			}
		}
	}
	return archives, nil
}

func (s *parseService) extractArchive(ctx context.Context, stream *streams.RecordStream, archive stagedArchive) error {
	rc, err := s.staging.Get(ctx, archive.key)
	if err != nil {
		return errInternalStagingFailed(err)
	}
	defer rc.Close()

	gz, err := gzip.NewReader(rc)
	if err != nil {
		return errInternalDecompressionFailed(archive.key, err)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		record, err := extractRecord(scanner.Text())
		if err != nil {
			return err
		}
		if err := stream.Append(record); err != nil {
			return errInternalSpillFailed(err)
		}
		metricLinesExtractedTotal.WithLabelValues(archive.source).Inc()
	}
	if err := scanner.Err(); err != nil {
		return errInternalDecompressionFailed(archive.key, err)
	}
	return nil
}

// extractRecord condenses one raw line to "<timestamp> <method> <url>".
// A line with too few fields aborts the run; there is no skip-and-continue.
func extractRecord(line string) (string, error) {
	fields := strings.Split(line, " ")
	if len(fields) < minLineFields {
		return "", errMalformedLine(line, len(fields))
	}

	method := strings.Trim(fields[methodField], `"`)
	return fields[timestampField] + " " + method + " " + fields[urlField], nil
}
