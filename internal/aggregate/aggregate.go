// Package aggregate folds raw visit records into the per-day and
// per-month statistics behind the calendar view, the daily reports, and
// the USDA/EFAP monthly summaries.
package aggregate

import "github.com/evergreenpantry/pantryledger/internal/model"

// DayTotals holds the visit and person counts for one calendar day.
type DayTotals struct {
	Visits  int `json:"visits"`
	Persons int `json:"persons"`
}

// Unduplicated holds the compliance counts: each client counted once per
// month, at their earliest USDA-qualifying visit.
type Unduplicated struct {
	Households int `json:"households"`
	Persons    int `json:"persons"`
}

// Month is the full derived aggregate for one scope's month of visits.
type Month struct {
	// ByDay maps date keys to that day's totals. Only days with at
	// least one visit appear.
	ByDay        map[string]DayTotals `json:"byDay"`
	Totals       DayTotals            `json:"totals"`
	Unduplicated Unduplicated         `json:"unduplicated"`
}

// Aggregate computes the Month aggregate for the given visits. Callers
// scope the list to a single organization/location/month; whatever is
// passed is aggregated as-is.
//
// The unduplicated counts follow the monthly reporting rule: for each
// distinct client with at least one visit flagged as their first
// USDA-qualifying visit of the month, only the earliest such visit by
// date key counts (the key format sorts chronologically). When two
// qualifying visits share the earliest date, the one seen first in input
// order wins. Visits without a client, or whose flag is No or Unknown,
// never contribute.
//
// Aggregate is pure: it never mutates its input, and identical input
// yields identical output. Malformed fields degrade to zero rather than
// failing.
func Aggregate(visits []model.Visit) Month {
	m := Month{ByDay: make(map[string]DayTotals, 31)}

	// clientID -> earliest qualifying visit seen so far
	earliest := make(map[string]model.Visit)

	for _, v := range visits {
		day := m.ByDay[v.DateKey]
		day.Visits++
		day.Persons += v.Persons()
		m.ByDay[v.DateKey] = day

		m.Totals.Visits++
		m.Totals.Persons += v.Persons()

		if v.ClientID == "" || v.USDAFirstTimeThisMonth != model.Yes {
			continue
		}
		if best, ok := earliest[v.ClientID]; !ok || v.DateKey < best.DateKey {
			earliest[v.ClientID] = v
		}
	}

	m.Unduplicated.Households = len(earliest)
	for _, v := range earliest {
		m.Unduplicated.Persons += v.Persons()
	}
	return m
}

// VisitDays returns the set of date keys with at least one visit, for
// merging with manual service-day markers.
func (m Month) VisitDays() map[string]struct{} {
	days := make(map[string]struct{}, len(m.ByDay))
	for key := range m.ByDay {
		days[key] = struct{}{}
	}
	return days
}
