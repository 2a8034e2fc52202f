package parsers

import (
	"errors"
	"fmt"

	"elb-stats/internal/shared/svcerrors"
)

// ErrMalformedLine marks a log line with fewer fields than the extractor
// needs. It is fatal: one bad line aborts the whole run.
var ErrMalformedLine = errors.New("malformed log line")

const (
	codeMalformedLine           = "PRS_1000"
	codeInvalidArchiveTimestamp = "PRS_1001"

	codeInternalStagingFailed       = "PRS_9000"
	codeInternalDecompressionFailed = "PRS_9001"
	codeInternalSpillFailed         = "PRS_9002"
)

// errMalformedLine returns an error for a line with too few fields.
func errMalformedLine(line string, fields int) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(
		codeMalformedLine,
		fmt.Sprintf("log line has %d fields, need at least 14: %.80q", fields, line),
		ErrMalformedLine,
	)
}

// errInvalidArchiveTimestamp returns an error when a staged archive name
// carries an unparseable timestamp.
func errInvalidArchiveTimestamp(key string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidArchiveTimestamp, fmt.Sprintf("malformed timestamp in archive name %q", key), cause)
}

// errInternalStagingFailed returns an error when reading the staging
// directory fails.
func errInternalStagingFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStagingFailed, fmt.Errorf("stagingStoreFailed: %w", cause))
}

// errInternalDecompressionFailed returns an error when an archive cannot be
// decompressed or read.
func errInternalDecompressionFailed(key string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalDecompressionFailed, fmt.Errorf("decompressionFailed for %q: %w", key, cause))
}

// errInternalSpillFailed returns an error when the record stream cannot be
// written.
func errInternalSpillFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSpillFailed, fmt.Errorf("recordStreamFailed: %w", cause))
}
