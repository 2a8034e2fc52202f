package models

import (
	"fmt"
	"time"
)

// Source is one logical load balancer whose access logs can be pulled:
// the public-facing ("external") or the private ("internal") one. KeyPrefix
// is the per-balancer part of the S3 key; Dir is the staging subdirectory
// archives for this source land in.
type Source struct {
	Name      string
	KeyPrefix string
	Dir       string
}

func NewExternalSource(keyPrefix string) Source {
	return Source{Name: "external", KeyPrefix: keyPrefix, Dir: "ext"}
}

func NewInternalSource(keyPrefix string) Source {
	return Source{Name: "internal", KeyPrefix: keyPrefix, Dir: "int"}
}

// ListingPrefix builds the day-scoped S3 listing prefix for this source:
// <basePrefix>/<yyyy>/<mm>/<dd>/<keyPrefix>.
func (s Source) ListingPrefix(basePrefix string, date time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s", basePrefix, date.Year(), date.Month(), date.Day(), s.KeyPrefix)
}
