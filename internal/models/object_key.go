package models

import (
	"fmt"
	"strings"
	"time"
)

// keyTimestampLayout is the timestamp embedded in ELB log object keys and
// in the staged archive file names derived from them, e.g. 20180321T0100Z.
const keyTimestampLayout = "20060102T1504Z"

// TimestampFromName extracts the embedded timestamp from a prefix-stripped
// object key or a staged archive file name. The timestamp is segment index 1
// when the name is split on "_".
func TimestampFromName(name string) (time.Time, error) {
	segments := strings.Split(name, "_")
	if len(segments) < 2 {
		return time.Time{}, fmt.Errorf("object name %q has no timestamp segment", name)
	}

	t, err := time.Parse(keyTimestampLayout, segments[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp segment %q in object name %q: %w", segments[1], name, err)
	}
	return t, nil
}
