package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewRunID generates a ULID identifying one pipeline run. It tags every log
// line of the run so interleaved output from repeated invocations against
// the same staging directory can be told apart.
var NewRunID = func() string {
	return ulid.Make().String()
}
