package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const (
	FieldErrorCode = "error_code"

	ValueNoError = ""

	Namespace   = "elb_stats"
	SubDownload = "download"
	SubParse    = "parse"
	SubAnalyze  = "analyze"
)

// CounterOpts is a type alias for prometheus.CounterOpts.
type CounterOpts = prometheus.CounterOpts

// NewCounterVec creates a new CounterVec with the given CounterOpts and label names.
// It is automatically registered with the default prometheus registry.
var NewCounterVec = promauto.NewCounterVec

// CounterTotal is a gathered counter value, used to log run totals when the
// process finishes (a batch run has nothing to scrape).
type CounterTotal struct {
	Name  string
	Value float64
}

// GatherTotals collects every counter registered under the elb_stats
// namespace from the default registry, summed across label values.
func GatherTotals() ([]CounterTotal, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	var totals []CounterTotal
	for _, family := range families {
		if family.GetType() != dto.MetricType_COUNTER {
			continue
		}
		name := family.GetName()
		if len(name) < len(Namespace) || name[:len(Namespace)] != Namespace {
			continue
		}
		var sum float64
		for _, m := range family.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
		totals = append(totals, CounterTotal{Name: name, Value: sum})
	}
	return totals, nil
}
