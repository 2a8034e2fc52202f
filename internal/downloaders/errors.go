package downloaders

import (
	"errors"
	"fmt"

	"elb-stats/internal/shared/svcerrors"
)

// Sentinels for the two empty-result conditions the operator can hit: the
// day prefix holds nothing at all, or it holds objects but none inside the
// requested window.
var (
	ErrNoObjectsFound   = errors.New("no objects found under listing prefix")
	ErrNoObjectsInRange = errors.New("no objects matched given time period")
)

const (
	codeNoObjectsFound      = "DL_1000"
	codeNoObjectsInRange    = "DL_1001"
	codeInvalidKeyTimestamp = "DL_1002"

	codeInternalObjectStoreFailed = "DL_9000"
	codeInternalStagingFailed     = "DL_9001"
)

// errNoObjectsFound returns an error when a listing comes back empty.
func errNoObjectsFound(prefix string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeNoObjectsFound, fmt.Sprintf("no objects under prefix %q", prefix), ErrNoObjectsFound)
}

// errNoObjectsInRange returns an error when a non-empty listing has no key
// inside the window.
func errNoObjectsInRange(prefix string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeNoObjectsInRange, fmt.Sprintf("no objects in window under prefix %q", prefix), ErrNoObjectsInRange)
}

// errInvalidKeyTimestamp returns an error when an object key's embedded
// timestamp cannot be parsed.
func errInvalidKeyTimestamp(key string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidKeyTimestamp, fmt.Sprintf("malformed timestamp in object key %q", key), cause)
}

// errInternalObjectStoreFailed returns an error when a listing or download
// call fails. There is no retry: the run aborts.
func errInternalObjectStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalObjectStoreFailed, fmt.Errorf("objectStoreFailed: %w", cause))
}

// errInternalStagingFailed returns an error when writing to the staging
// directory fails.
func errInternalStagingFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStagingFailed, fmt.Errorf("stagingStoreFailed: %w", cause))
}
