// Package cli is the glue layer around the pipeline core: flag parsing and
// window validation live here, not in the services.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"elb-stats/internal/models"
	"elb-stats/internal/shared/svcerrors"
)

const usage = `usage: elbstats [flags] <start> <end>

Aggregates load-balancer access logs for the window (start, end) into a CSV
report. Datetimes accept several layouts, e.g. "2018-03-21", "2018-03-21T09:00"
or "2018-03-21 09:00:00", and are treated as UTC.`

const (
	codeBadFlags  = "CLI_1000"
	codeBadWindow = "CLI_1001"
)

// ErrHelpRequested signals that usage was printed and the process should
// exit cleanly.
var ErrHelpRequested = errors.New("help requested")

// startEndLayouts are tried in order against the positional datetime
// arguments. Zone-less layouts are read as UTC; zoned ones are converted.
var startEndLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Options is everything the operator chose on the command line.
type Options struct {
	Window        models.TimeWindow
	External      bool
	Internal      bool
	ForceDownload bool
	AssumeYes     bool
	ConfigPath    string
}

// Parse reads args (without the program name) into Options.
func Parse(args []string) (*Options, error) {
	opts := &Options{}

	flags := pflag.NewFlagSet("elbstats", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Println(usage)
		fmt.Println()
		fmt.Println(flags.FlagUsages())
	}
	flags.BoolVarP(&opts.External, "external", "e", true, "include the external load balancer's logs")
	flags.BoolVarP(&opts.Internal, "internal", "i", false, "include the internal load balancer's logs")
	flags.BoolVar(&opts.ForceDownload, "force-download", false, "re-fetch archives even when already staged")
	flags.BoolVarP(&opts.AssumeYes, "yes", "y", false, "overwrite an existing report without prompting")
	flags.StringVar(&opts.ConfigPath, "config", "./configs/configs.yml", "path to the config file")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelpRequested
		}
		return nil, svcerrors.NewInvalidArgumentError(codeBadFlags, err.Error(), err)
	}

	positional := flags.Args()
	if len(positional) != 2 {
		return nil, svcerrors.NewInvalidArgumentError(codeBadWindow, fmt.Sprintf("need <start> and <end> arguments, got %d", len(positional)), nil)
	}

	start, err := parseDatetime(positional[0])
	if err != nil {
		return nil, svcerrors.NewInvalidArgumentError(codeBadWindow, fmt.Sprintf("invalid start %q", positional[0]), err)
	}
	end, err := parseDatetime(positional[1])
	if err != nil {
		return nil, svcerrors.NewInvalidArgumentError(codeBadWindow, fmt.Sprintf("invalid end %q", positional[1]), err)
	}

	opts.Window = models.NewTimeWindow(start, end)
	if err := opts.Window.Validate(); err != nil {
		return nil, svcerrors.NewInvalidArgumentError(codeBadWindow, err.Error(), err)
	}
	if !opts.External && !opts.Internal {
		return nil, svcerrors.NewInvalidArgumentError(codeBadFlags, "at least one of --external/--internal must be enabled", nil)
	}

	return opts, nil
}

func parseDatetime(value string) (time.Time, error) {
	for _, layout := range startEndLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", value)
}
