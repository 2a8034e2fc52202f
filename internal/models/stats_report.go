package models

// AggregationKey groups records for counting. Service may be empty when no
// classification rule matched the URL.
type AggregationKey struct {
	Service string
	Method  string
	URL     string
}

// StatsRow is one aggregated count.
type StatsRow struct {
	Key   AggregationKey
	Count int64
}

// StatsReport is the final artifact of a run: one row per aggregation key,
// in the order the keys were first observed.
type StatsReport struct {
	Window TimeWindow
	Rows   []StatsRow
}
