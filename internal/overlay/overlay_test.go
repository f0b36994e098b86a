package overlay

import (
	"errors"
	"slices"
	"testing"

	"github.com/evergreenpantry/pantryledger/internal/dates"
)

// fakeStore is an in-memory Store for exercising the overlay logic.
type fakeStore struct {
	data    map[string][]string
	saves   int
	loadErr error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]string)}
}

func (f *fakeStore) Load(scopeKey string) ([]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.data[scopeKey], nil
}

func (f *fakeStore) Save(scopeKey string, days []string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.data[scopeKey] = slices.Clone(days)
	return nil
}

func (f *fakeStore) Remove(scopeKey, day string) error {
	kept := f.data[scopeKey][:0:0]
	for _, d := range f.data[scopeKey] {
		if d != day {
			kept = append(kept, d)
		}
	}
	f.data[scopeKey] = kept
	return nil
}

var april = dates.MonthBounds(2024, 3)

const scope = "org1/loc1/2024-04"

func TestScopeKey(t *testing.T) {
	if got := ScopeKey("org1", "loc1", "2024-04"); got != "org1/loc1/2024-04" {
		t.Errorf("ScopeKey = %q", got)
	}
	// Single-location orgs use an empty location segment.
	if got := ScopeKey("org1", "", "2024-04"); got != "org1//2024-04" {
		t.Errorf("ScopeKey = %q", got)
	}
}

func TestAddDayPersistsSorted(t *testing.T) {
	s := newFakeStore()

	if err := AddDay(s, scope, april, "2024-04-15", nil); err != nil {
		t.Fatalf("AddDay: %v", err)
	}
	if err := AddDay(s, scope, april, "2024-04-02", nil); err != nil {
		t.Fatalf("AddDay: %v", err)
	}

	want := []string{"2024-04-02", "2024-04-15"}
	if !slices.Equal(s.data[scope], want) {
		t.Errorf("stored = %v, want %v", s.data[scope], want)
	}
}

func TestAddDayRejectsImpossibleDate(t *testing.T) {
	s := newFakeStore()
	s.data[scope] = []string{"2024-04-02"}

	err := AddDay(s, scope, april, "2024-04-31", nil)
	if err == nil {
		t.Fatal("AddDay(2024-04-31) should fail: April has 30 days")
	}
	if !slices.Equal(s.data[scope], []string{"2024-04-02"}) {
		t.Errorf("stored set mutated: %v", s.data[scope])
	}
	if s.saves != 0 {
		t.Errorf("saves = %d, want 0", s.saves)
	}
}

func TestAddDayRejectsOutOfMonth(t *testing.T) {
	s := newFakeStore()
	for _, day := range []string{"2024-03-31", "2024-05-01", "2023-04-15"} {
		if err := AddDay(s, scope, april, day, nil); err == nil {
			t.Errorf("AddDay(%s) should fail: outside month", day)
		}
	}
	if s.saves != 0 {
		t.Errorf("saves = %d, want 0", s.saves)
	}
}

func TestAddDayRejectsMalformedKey(t *testing.T) {
	s := newFakeStore()
	for _, day := range []string{"", "april 2", "2024-4-02", "2024-04-02T00:00"} {
		if err := AddDay(s, scope, april, day, nil); err == nil {
			t.Errorf("AddDay(%q) should fail", day)
		}
	}
}

func TestAddDayNoopWhenDayHasVisits(t *testing.T) {
	s := newFakeStore()
	visitDays := map[string]struct{}{"2024-04-10": {}}

	if err := AddDay(s, scope, april, "2024-04-10", visitDays); err != nil {
		t.Fatalf("AddDay: %v", err)
	}
	if s.saves != 0 {
		t.Errorf("saves = %d, want 0 (visits take precedence)", s.saves)
	}
}

func TestAddDayNoopWhenAlreadyMarked(t *testing.T) {
	s := newFakeStore()
	s.data[scope] = []string{"2024-04-10"}

	if err := AddDay(s, scope, april, "2024-04-10", nil); err != nil {
		t.Fatalf("AddDay: %v", err)
	}
	if s.saves != 0 {
		t.Errorf("saves = %d, want 0", s.saves)
	}
}

func TestAddDaySurfacesPersistError(t *testing.T) {
	s := newFakeStore()
	s.saveErr = errors.New("disk full")

	// Non-fatal by policy, but the caller gets the error to log.
	if err := AddDay(s, scope, april, "2024-04-10", nil); err == nil {
		t.Error("AddDay should surface the persist error")
	}
}

func TestLoadDegradesToEmptySet(t *testing.T) {
	s := newFakeStore()
	s.loadErr = errors.New("corrupt")

	set := Load(s, scope)
	if len(set) != 0 {
		t.Errorf("Load with store error = %v, want empty", set)
	}
}

func TestUnionDeduplicatesNewestFirst(t *testing.T) {
	manual := map[string]struct{}{
		"2024-04-05": {},
		"2024-04-20": {},
	}
	visitDays := map[string]struct{}{
		"2024-04-05": {}, // also marked manually; must appear once
		"2024-04-12": {},
	}

	got := Union(manual, visitDays)
	want := []string{"2024-04-20", "2024-04-12", "2024-04-05"}
	if !slices.Equal(got, want) {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestUnionKeepsLingeringMarkerHidden(t *testing.T) {
	// A marker whose day later got real visits is hidden by the union
	// but stays in storage; cleanup is a product decision.
	s := newFakeStore()
	s.data[scope] = []string{"2024-04-05"}

	manual := Load(s, scope)
	got := Union(manual, map[string]struct{}{"2024-04-05": {}})
	if !slices.Equal(got, []string{"2024-04-05"}) {
		t.Errorf("Union = %v", got)
	}
	if !slices.Equal(s.data[scope], []string{"2024-04-05"}) {
		t.Errorf("marker was removed from storage: %v", s.data[scope])
	}
}

func TestFilterDays(t *testing.T) {
	days := []string{"2024-04-20", "2024-04-12", "2024-03-05"}

	if got := FilterDays(days, "2024-04"); !slices.Equal(got, []string{"2024-04-20", "2024-04-12"}) {
		t.Errorf("FilterDays(2024-04) = %v", got)
	}
	if got := FilterDays(days, "-05"); !slices.Equal(got, []string{"2024-03-05"}) {
		t.Errorf("FilterDays(-05) = %v", got)
	}
	if got := FilterDays(days, ""); !slices.Equal(got, days) {
		t.Errorf("FilterDays(empty) = %v", got)
	}
}

func TestRemoveDay(t *testing.T) {
	s := newFakeStore()
	s.data[scope] = []string{"2024-04-05", "2024-04-10"}

	if err := RemoveDay(s, scope, "2024-04-05"); err != nil {
		t.Fatalf("RemoveDay: %v", err)
	}
	if !slices.Equal(s.data[scope], []string{"2024-04-10"}) {
		t.Errorf("stored = %v", s.data[scope])
	}
}
