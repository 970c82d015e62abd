package Stats

import (
	"context"
	"log"
	"time"
)

// TripSlot is one of the five per-day trip records on a schedule row, already
// coerced to concrete types at the source boundary.
type TripSlot struct {
	Completed  bool    `json:"completed"`
	Commission float64 `json:"commission"`
}

// TripRow is one lorry's schedule row for one calendar day, normalized so the
// aggregation never sees a stringly typed field.
type TripRow struct {
	Plate string      `json:"plate"`
	Slots [5]TripSlot `json:"trips"`
	Toll  float64     `json:"tollAmount"`
	Fuel  float64     `json:"fuelAmount"`
}

// RangeSource answers a whole date range in one call. The schedules table in
// the remote store is the only implementation that does real I/O.
type RangeSource interface {
	FetchRange(ctx context.Context, r DateRange) ([]TripRow, error)
}

// DaySource answers a single day's rows, or reports the day as absent.
type DaySource interface {
	LoadDay(date time.Time) ([]TripRow, bool)
}

// SnapshotSource exposes the in-memory rows of the day currently open in the
// planner, used as a last resort when that exact day is requested.
type SnapshotSource interface {
	CurrentDay() (time.Time, []TripRow, bool)
}

// RowFetcher resolves a date range to trip rows, trying the remote store
// first and degrading to the local per-day cache and the current-day snapshot.
// Partial results from different tiers are never mixed for the same day.
type RowFetcher struct {
	Primary  RangeSource
	Cache    DaySource
	Snapshot SnapshotSource

	// Excluded reports plates hidden or archived in the config. It only
	// applies on the fallback tiers; the remote store is authoritative.
	Excluded func(plate string) bool
}

// FetchRows returns every trip row in the range. A remote store failure is
// logged and absorbed; days with no data anywhere contribute nothing. The
// result is never an error.
func (f *RowFetcher) FetchRows(ctx context.Context, r DateRange) []TripRow {
	if f.Primary != nil {
		rows, err := f.Primary.FetchRange(ctx, r)
		if err == nil {
			return rows
		}
		log.Printf("schedules range query failed, falling back to local data: %v", err)
	}

	var rows []TripRow
	for _, day := range r.Days() {
		dayRows := f.loadFallbackDay(day)
		for _, row := range dayRows {
			if f.Excluded != nil && f.Excluded(row.Plate) {
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func (f *RowFetcher) loadFallbackDay(day time.Time) []TripRow {
	if f.Cache != nil {
		if rows, ok := f.Cache.LoadDay(day); ok && len(rows) > 0 {
			return rows
		}
	}
	if f.Snapshot != nil {
		if current, rows, ok := f.Snapshot.CurrentDay(); ok && SameDay(current, day) {
			return rows
		}
	}
	return nil
}
