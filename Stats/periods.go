package Stats

import "time"

// Period is the reporting granularity the dashboard aggregates over.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DateRange is an inclusive calendar range. Start and End carry no time component.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveRange turns a period and a reference date into the inclusive range the
// dashboard should aggregate. Unknown periods resolve to the single reference day.
func ResolveRange(period Period, reference time.Time) DateRange {
	day := truncateToDay(reference)

	switch period {
	case PeriodWeek:
		// Monday start; a Sunday reference belongs to the week that began 6 days earlier
		offset := int(day.Weekday()) - 1
		if day.Weekday() == time.Sunday {
			offset = 6
		}
		start := day.AddDate(0, 0, -offset)
		return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
	case PeriodMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 1, -1)
		return DateRange{Start: start, End: end}
	case PeriodYear:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		end := time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, day.Location())
		return DateRange{Start: start, End: end}
	default:
		return DateRange{Start: day, End: day}
	}
}

// Days lists every calendar day in the range, in order.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FormatDate renders a date the way the schedules store keys it.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
