// Package dates implements timezone-naive calendar date arithmetic.
//
// Every date in the system is a plain calendar date serialized as a
// YYYY-MM-DD key. Dates are never derived from an instant plus a zone
// offset. All math works on year/month/day components, so a visit logged
// on "2024-03-02" stays on March 2 no matter where it is viewed.
package dates

import (
	"fmt"
	"iter"
	"time"
)

// Date is a calendar date with no time-of-day and no zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns a normalized Date. Out-of-range components roll over the
// way time.Date rolls them (day 0 is the last day of the prior month).
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// FromTime extracts the calendar date from t in t's own location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Key serializes the date as YYYY-MM-DD, zero-padded.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthKey serializes the date's month as YYYY-MM.
func (d Date) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// Parse decodes a YYYY-MM-DD key. It rejects keys that are not exactly
// that shape and keys naming impossible dates (2024-04-31).
func Parse(key string) (Date, error) {
	if len(key) != 10 || key[4] != '-' || key[7] != '-' {
		return Date{}, fmt.Errorf("invalid date key %q: want YYYY-MM-DD", key)
	}
	var year, month, day int
	if _, err := fmt.Sscanf(key, "%4d-%2d-%2d", &year, &month, &day); err != nil {
		return Date{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	d := Date{Year: year, Month: time.Month(month), Day: day}
	// Re-serializing catches trailing junk; normalizing catches rollover
	// (month 13, day 32).
	if d.Key() != key {
		return Date{}, fmt.Errorf("invalid date key %q: want YYYY-MM-DD", key)
	}
	if New(year, time.Month(month), day) != d {
		return Date{}, fmt.Errorf("invalid date key %q: no such calendar date", key)
	}
	return d, nil
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return New(d.Year, d.Month, d.Day+n)
}

// Weekday returns the day of the week for d.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Before reports whether d falls before o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// Bounds describes the first and last calendar day of a month.
type Bounds struct {
	Start    Date
	End      Date
	StartKey string
	EndKey   string
}

// MonthBounds returns the bounds of the given month. The month index is
// zero-based (0 = January); values outside 0-11 roll over into adjacent
// years, matching standard calendar normalization.
func MonthBounds(year, month int) Bounds {
	start := New(year, time.Month(month+1), 1)
	end := New(start.Year, start.Month+1, 0)
	return Bounds{
		Start:    start,
		End:      end,
		StartKey: start.Key(),
		EndKey:   end.Key(),
	}
}

// Contains reports whether key falls within [StartKey, EndKey]. The key
// format sorts chronologically, so string comparison is exact.
func (b Bounds) Contains(key string) bool {
	return key >= b.StartKey && key <= b.EndKey
}

// CalendarGrid yields the date keys of a full calendar grid for the given
// month (zero-based, rolls over like MonthBounds): from the Sunday on or
// before the 1st through the Saturday on or after the last day. The
// sequence is finite, restartable, and its length is always a multiple
// of 7.
func CalendarGrid(year, month int) iter.Seq[string] {
	return func(yield func(string) bool) {
		b := MonthBounds(year, month)
		day := b.Start.AddDays(-int(b.Start.Weekday()))
		last := b.End.AddDays(int(time.Saturday - b.End.Weekday()))
		for {
			if !yield(day.Key()) {
				return
			}
			if day == last {
				return
			}
			day = day.AddDays(1)
		}
	}
}
