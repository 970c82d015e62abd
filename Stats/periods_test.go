package Stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveRangeDay(t *testing.T) {
	// Time component is truncated
	reference := time.Date(2025, time.March, 14, 15, 30, 45, 0, time.UTC)
	r := ResolveRange(PeriodDay, reference)

	assert.Equal(t, date(2025, time.March, 14), r.Start)
	assert.Equal(t, r.Start, r.End)
}

func TestResolveRangeWeek(t *testing.T) {
	tests := []struct {
		name      string
		reference time.Time
		wantStart time.Time
	}{
		{"wednesday", date(2025, time.March, 12), date(2025, time.March, 10)},
		{"monday", date(2025, time.March, 10), date(2025, time.March, 10)},
		{"sunday belongs to the week started six days earlier", date(2025, time.March, 9), date(2025, time.March, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ResolveRange(PeriodWeek, tt.reference)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantStart.AddDate(0, 0, 6), r.End)
		})
	}
}

func TestResolveRangeMonth(t *testing.T) {
	r := ResolveRange(PeriodMonth, date(2025, time.February, 14))
	assert.Equal(t, date(2025, time.February, 1), r.Start)
	assert.Equal(t, date(2025, time.February, 28), r.End)

	// Leap year February
	r = ResolveRange(PeriodMonth, date(2024, time.February, 14))
	assert.Equal(t, date(2024, time.February, 29), r.End)

	r = ResolveRange(PeriodMonth, date(2025, time.December, 31))
	assert.Equal(t, date(2025, time.December, 1), r.Start)
	assert.Equal(t, date(2025, time.December, 31), r.End)
}

func TestResolveRangeYear(t *testing.T) {
	r := ResolveRange(PeriodYear, date(2025, time.June, 15))
	assert.Equal(t, date(2025, time.January, 1), r.Start)
	assert.Equal(t, date(2025, time.December, 31), r.End)
}

func TestResolveRangeUnknownPeriodFallsBackToDay(t *testing.T) {
	r := ResolveRange(Period("quarter"), date(2025, time.June, 15))
	assert.Equal(t, date(2025, time.June, 15), r.Start)
	assert.Equal(t, r.Start, r.End)
}

func TestResolveRangeStartNeverAfterEnd(t *testing.T) {
	reference := date(2025, time.July, 20)
	for _, period := range []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, Period("bogus")} {
		r := ResolveRange(period, reference)
		assert.False(t, r.Start.After(r.End), "period %s", period)
	}
}

func TestDays(t *testing.T) {
	r := DateRange{Start: date(2025, time.March, 30), End: date(2025, time.April, 2)}
	days := r.Days()

	require.Len(t, days, 4)
	assert.Equal(t, date(2025, time.March, 30), days[0])
	assert.Equal(t, date(2025, time.April, 2), days[3])
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-03-05", FormatDate(date(2025, time.March, 5)))
}
