package valueobject

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// DateRange is an inclusive range of calendar days. Both bounds are UTC midnight.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a DateRange from two instants, truncating both to their UTC day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		Start: TruncateToDay(start),
		End:   TruncateToDay(end),
	}
}

// TruncateToDay returns UTC midnight of the day t falls on (in UTC).
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a yyyy-MM-dd string into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// IsValid reports whether Start is not after End.
func (r DateRange) IsValid() bool {
	return !r.Start.After(r.End)
}

// Days returns the number of calendar days in the range, both bounds included.
func (r DateRange) Days() int {
	if !r.IsValid() {
		return 0
	}
	return int(r.End.Sub(r.Start)/day) + 1
}

// EndExclusive returns midnight of the day after End, the upper bound used by storage queries.
func (r DateRange) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateToDay(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Previous returns the range of equal length that ends the day before Start.
func (r DateRange) Previous() DateRange {
	length := r.Days()
	if length == 0 {
		length = 1
	}
	end := r.Start.AddDate(0, 0, -1)
	return DateRange{
		Start: end.AddDate(0, 0, -(length - 1)),
		End:   end,
	}
}

// EachDay returns every day of the range in ascending order.
func (r DateRange) EachDay() []time.Time {
	days := make([]time.Time, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
