package analyzers

import (
	"elb-stats/internal/models"
)

// Aggregator counts records per (service, method, normalized URL). Keys are
// created lazily on first observation and rows come back in first-seen
// order, so the report reads in traffic order rather than alphabetically.
type Aggregator struct {
	counts map[models.AggregationKey]int64
	order  []models.AggregationKey
}

func NewAggregator() *Aggregator {
	return &Aggregator{counts: make(map[models.AggregationKey]int64)}
}

func (a *Aggregator) Add(key models.AggregationKey) {
	if _, seen := a.counts[key]; !seen {
		a.order = append(a.order, key)
	}
	a.counts[key]++
}

// Rows returns one StatsRow per key in first-seen order.
func (a *Aggregator) Rows() []models.StatsRow {
	rows := make([]models.StatsRow, 0, len(a.order))
	for _, key := range a.order {
		rows = append(rows, models.StatsRow{Key: key, Count: a.counts[key]})
	}
	return rows
}
