package analyzers

import (
	"fmt"

	"elb-stats/internal/shared/svcerrors"
)

const (
	codeInvalidRecord = "ANL_1000"

	codeInternalRecordStreamFailed = "ANL_9000"
)

// errInvalidRecord returns an error when a condensed record cannot be
// parsed (bad field count or timestamp). Fatal, like every other failure.
func errInvalidRecord(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRecord, "malformed condensed record", cause)
}

// errInternalRecordStreamFailed returns an error when the record stream
// cannot be read.
func errInternalRecordStreamFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRecordStreamFailed, fmt.Errorf("recordStreamFailed: %w", cause))
}
