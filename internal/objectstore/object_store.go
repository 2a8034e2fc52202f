package objectstore

import (
	"context"
	"io"
)

// ObjectStore is the remote side of the pipeline: the access-log bucket.
//
// List performs exactly one listing call for the prefix. Continuation
// tokens are deliberately not followed: daily volume is assumed to fit in
// one page, and a truncated listing only surfaces as a debug log.
//
//go:generate mockgen -source=object_store.go -destination=./mocks/object_store_mock.go -package=mocks
type ObjectStore interface {
	List(ctx context.Context, bucket, prefix string) ([]string, error)
	Download(ctx context.Context, bucket, key string, w io.Writer) error
}
