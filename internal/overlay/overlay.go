// Package overlay manages manual service-day markers: user-declared
// calendar dates with no backing visit, used to represent a service day
// with zero recorded visits. Markers are scoped per organization,
// location, and month, and merged with visit-derived days wherever a
// "days in this month" list is shown.
package overlay

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evergreenpantry/pantryledger/internal/dates"
)

// Store persists marker sets keyed by scope. Implementations treat
// absent or malformed payloads as an empty set, never an error worth
// surfacing to the user.
type Store interface {
	Load(scopeKey string) ([]string, error)
	Save(scopeKey string, days []string) error
	Remove(scopeKey, day string) error
}

// ScopeKey builds the composite key a marker set is stored under.
func ScopeKey(orgID, locationID, monthKey string) string {
	return orgID + "/" + locationID + "/" + monthKey
}

// Load reads the marker set for a scope. Store errors degrade to an
// empty set; the markers are a convenience overlay, not critical data.
func Load(s Store, scopeKey string) map[string]struct{} {
	days, err := s.Load(scopeKey)
	if err != nil {
		return map[string]struct{}{}
	}
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

// Save persists the marker set as a sorted list. A persist failure is
// non-fatal: callers log it and keep the in-memory set authoritative
// for the session.
func Save(s Store, scopeKey string, set map[string]struct{}) error {
	days := make([]string, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Strings(days)
	return s.Save(scopeKey, days)
}

// AddDay validates and records a manual marker for the scope. The day
// must be a well-formed date key inside the month bounds; otherwise a
// validation error is returned and nothing is mutated. A day that
// already has real visits, or is already marked, is a no-op: the day is
// still considered selected, visits just take precedence.
func AddDay(s Store, scopeKey string, bounds dates.Bounds, day string, visitDays map[string]struct{}) error {
	if _, err := dates.Parse(day); err != nil {
		return fmt.Errorf("invalid service day: %w", err)
	}
	if !bounds.Contains(day) {
		return fmt.Errorf("service day %s is outside %s..%s", day, bounds.StartKey, bounds.EndKey)
	}

	if _, ok := visitDays[day]; ok {
		return nil
	}
	set := Load(s, scopeKey)
	if _, ok := set[day]; ok {
		return nil
	}
	set[day] = struct{}{}
	return Save(s, scopeKey, set)
}

// RemoveDay deletes a single marker. Removing a day that was never
// marked is a no-op.
func RemoveDay(s Store, scopeKey, day string) error {
	return s.Remove(scopeKey, day)
}

// Union merges manual markers with the days that have real visits into
// the full display list, newest first. A day present in both sets
// appears exactly once; a marker whose date later gained real visits is
// hidden by the union but deliberately left in storage (whether to
// garbage-collect it is a product decision).
func Union(manual, visitDays map[string]struct{}) []string {
	merged := make(map[string]struct{}, len(manual)+len(visitDays))
	for d := range manual {
		merged[d] = struct{}{}
	}
	for d := range visitDays {
		merged[d] = struct{}{}
	}
	out := make([]string, 0, len(merged))
	for d := range merged {
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// FilterDays narrows a day list by free-text substring match against
// the date key itself.
func FilterDays(days []string, term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return days
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		if strings.Contains(d, term) {
			out = append(out, d)
		}
	}
	return out
}
