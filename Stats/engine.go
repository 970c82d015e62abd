package Stats

import (
	"context"
	"log"
	"time"
)

// Engine runs the full aggregation pipeline: resolve the period to a range,
// fetch rows through the source tiers, and fold them into fleet totals.
type Engine struct {
	Fetcher *RowFetcher
}

// StatsForPeriod aggregates one reporting period. It never fails: any panic
// mid-computation is logged and reported as an empty all-zero result so the
// dashboard always has something to render.
func (e *Engine) StatsForPeriod(ctx context.Context, period Period, reference time.Time, rules RuleSet) (stats FleetStats) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("stats aggregation failed: %v", r)
			stats = FleetStats{VehicleData: []VehicleStats{}}
		}
	}()

	rng := ResolveRange(period, reference)
	rows := e.Fetcher.FetchRows(ctx, rng)
	return Aggregate(rows, rules)
}
