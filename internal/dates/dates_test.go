package dates

import (
	"slices"
	"testing"
	"time"
)

func TestParseFormatRoundTrip(t *testing.T) {
	keys := []string{
		"2024-01-01",
		"2024-02-29",
		"2024-12-31",
		"1999-07-04",
		"2031-11-09",
	}
	for _, key := range keys {
		d, err := Parse(key)
		if err != nil {
			t.Fatalf("Parse(%q): %v", key, err)
		}
		if got := d.Key(); got != key {
			t.Errorf("Parse(%q).Key() = %q", key, got)
		}
	}
}

func TestFormatZeroPads(t *testing.T) {
	d := New(2024, time.March, 2)
	if got := d.Key(); got != "2024-03-02" {
		t.Errorf("Key() = %q, want %q", got, "2024-03-02")
	}
	if got := d.MonthKey(); got != "2024-03" {
		t.Errorf("MonthKey() = %q, want %q", got, "2024-03")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	bad := []string{
		"",
		"2024-04-31", // April has 30 days
		"2023-02-29", // not a leap year
		"2024-13-01",
		"2024-00-10",
		"2024-01-00",
		"24-01-01",
		"2024/01/01",
		"2024-1-01",
		"2024-04-3x",
		"2024-04-01 ",
	}
	for _, key := range bad {
		if _, err := Parse(key); err == nil {
			t.Errorf("Parse(%q) should fail", key)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	// February of a leap year.
	b := MonthBounds(2024, 1)
	if b.StartKey != "2024-02-01" {
		t.Errorf("StartKey = %q, want 2024-02-01", b.StartKey)
	}
	if b.EndKey != "2024-02-29" {
		t.Errorf("EndKey = %q, want 2024-02-29", b.EndKey)
	}
}

func TestMonthBoundsRollover(t *testing.T) {
	// Month 12 of 2024 is January 2025; month -1 is December 2023.
	next := MonthBounds(2024, 12)
	if next.StartKey != "2025-01-01" || next.EndKey != "2025-01-31" {
		t.Errorf("MonthBounds(2024, 12) = %q..%q, want 2025-01-01..2025-01-31", next.StartKey, next.EndKey)
	}
	prev := MonthBounds(2024, -1)
	if prev.StartKey != "2023-12-01" || prev.EndKey != "2023-12-31" {
		t.Errorf("MonthBounds(2024, -1) = %q..%q, want 2023-12-01..2023-12-31", prev.StartKey, prev.EndKey)
	}
}

func TestBoundsContains(t *testing.T) {
	b := MonthBounds(2024, 3) // April
	for key, want := range map[string]bool{
		"2024-04-01": true,
		"2024-04-30": true,
		"2024-04-15": true,
		"2024-03-31": false,
		"2024-05-01": false,
	} {
		if got := b.Contains(key); got != want {
			t.Errorf("Contains(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestCalendarGridFebruary2024(t *testing.T) {
	grid := slices.Collect(CalendarGrid(2024, 1))

	// Feb 1 2024 is a Thursday and Feb 29 is a Thursday: 5 full weeks.
	if len(grid) != 35 {
		t.Fatalf("len(grid) = %d, want 35", len(grid))
	}
	if grid[0] != "2024-01-28" {
		t.Errorf("grid[0] = %q, want 2024-01-28", grid[0])
	}
	if grid[len(grid)-1] != "2024-03-02" {
		t.Errorf("grid[34] = %q, want 2024-03-02", grid[len(grid)-1])
	}

	b := MonthBounds(2024, 1)
	for d := b.Start; !b.End.Before(d); d = d.AddDays(1) {
		if !slices.Contains(grid, d.Key()) {
			t.Errorf("grid missing %s", d.Key())
		}
	}
}

func TestCalendarGridShape(t *testing.T) {
	for month := 0; month < 12; month++ {
		grid := slices.Collect(CalendarGrid(2025, month))
		if len(grid)%7 != 0 {
			t.Errorf("month %d: len %d not divisible by 7", month, len(grid))
		}
		first, err := Parse(grid[0])
		if err != nil {
			t.Fatalf("month %d: bad first key %q", month, grid[0])
		}
		if first.Weekday() != time.Sunday {
			t.Errorf("month %d: starts on %v, want Sunday", month, first.Weekday())
		}
		last, err := Parse(grid[len(grid)-1])
		if err != nil {
			t.Fatalf("month %d: bad last key %q", month, grid[len(grid)-1])
		}
		if last.Weekday() != time.Saturday {
			t.Errorf("month %d: ends on %v, want Saturday", month, last.Weekday())
		}
	}
}

func TestCalendarGridRestartable(t *testing.T) {
	seq := CalendarGrid(2024, 6)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Error("second iteration differs from first")
	}
}

func TestCalendarGridEarlyStop(t *testing.T) {
	var got []string
	for key := range CalendarGrid(2024, 6) {
		got = append(got, key)
		if len(got) == 3 {
			break
		}
	}
	if len(got) != 3 {
		t.Fatalf("collected %d keys, want 3", len(got))
	}
}

func TestAddDaysAcrossBoundaries(t *testing.T) {
	d := New(2024, time.December, 31)
	if got := d.AddDays(1).Key(); got != "2025-01-01" {
		t.Errorf("Dec 31 + 1 = %q, want 2025-01-01", got)
	}
	if got := New(2024, time.March, 1).AddDays(-1).Key(); got != "2024-02-29" {
		t.Errorf("Mar 1 - 1 = %q, want 2024-02-29", got)
	}
}

func TestFromTimeUsesLocalComponents(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*3600)
	// 23:30 on Jan 1 in UTC+13 is still Jan 1 there, even though the
	// instant is Jan 1 10:30 UTC. Calendar dates follow components.
	d := FromTime(time.Date(2024, time.January, 1, 23, 30, 0, 0, loc))
	if got := d.Key(); got != "2024-01-01" {
		t.Errorf("FromTime = %q, want 2024-01-01", got)
	}
}
