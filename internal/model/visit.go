// Package model defines the record shapes shared across the engine.
// JSON field names match the documents already in the hosted database
// and must not change.
package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Visit represents one service interaction. Visits are owned by the
// logging collaborator; the engine only consumes immutable snapshots.
type Visit struct {
	ID         string `json:"id"`
	OrgID      string `json:"orgId"`
	LocationID string `json:"locationId,omitempty"`
	// ClientID may be empty when the visit is orphaned.
	ClientID string `json:"clientId,omitempty"`
	// DateKey is the local calendar date of the visit, YYYY-MM-DD.
	DateKey string `json:"dateKey"`
	// MonthKey is YYYY-MM; derive it from DateKey when absent.
	MonthKey      string      `json:"monthKey,omitempty"`
	HouseholdSize LenientSize `json:"householdSize"`
	// USDAFirstTimeThisMonth marks the client's first USDA-qualifying
	// visit of the month. Unknown on older records.
	USDAFirstTimeThisMonth TriState  `json:"usdaFirstTimeThisMonth"`
	VisitAt                time.Time `json:"visitAt"`
	// AddedAt is when the record was entered, distinct from VisitAt;
	// used for recency ordering. Older records carry CreatedAt instead.
	AddedAt   time.Time `json:"addedAt"`
	CreatedAt time.Time `json:"createdAt"`
	// Point-in-time snapshot fields captured at logging time, used when
	// the live client record is unavailable or overridden per-visit.
	ClientFirstName string `json:"clientFirstName,omitempty"`
	ClientLastName  string `json:"clientLastName,omitempty"`
	ClientCounty    string `json:"clientCounty,omitempty"`
	ClientZip       string `json:"clientZip,omitempty"`
}

// MonthKeyOrDerived returns MonthKey, deriving it from the first seven
// characters of DateKey when the record predates the monthKey field.
func (v Visit) MonthKeyOrDerived() string {
	if v.MonthKey != "" {
		return v.MonthKey
	}
	if len(v.DateKey) >= 7 {
		return v.DateKey[:7]
	}
	return ""
}

// Persons returns the household size clamped to a non-negative count.
func (v Visit) Persons() int {
	if v.HouseholdSize < 0 {
		return 0
	}
	return int(v.HouseholdSize)
}

// AddedTime returns the first present of AddedAt, CreatedAt, VisitAt.
func (v Visit) AddedTime() time.Time {
	if !v.AddedAt.IsZero() {
		return v.AddedAt
	}
	if !v.CreatedAt.IsZero() {
		return v.CreatedAt
	}
	return v.VisitAt
}

// LenientSize is a non-negative integer that decodes leniently: JSON
// numbers, numeric strings, and null are accepted; anything else (or a
// negative value) degrades to 0 instead of failing.
type LenientSize int

func (n LenientSize) MarshalJSON() ([]byte, error) {
	if n < 0 {
		n = 0
	}
	return json.Marshal(int(n))
}

func (n *LenientSize) UnmarshalJSON(data []byte) error {
	*n = 0

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		if f > 0 {
			*n = LenientSize(f)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && i > 0 {
			*n = LenientSize(i)
		}
	}
	return nil
}
