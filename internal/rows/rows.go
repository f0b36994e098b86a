// Package rows derives the display-ready table for a single day's
// visits: each visit joined with its client record, then filtered and
// sorted per the table controls. Rows are recomputed on every render and
// never persisted.
package rows

import (
	"sort"
	"strings"

	"github.com/evergreenpantry/pantryledger/internal/model"
)

const placeholderName = "Unknown Client"

// Row is the display projection of one visit.
type Row struct {
	VisitID  string
	ClientID string
	// Name is the display name: live client record first, then the
	// name snapshotted on the visit, then a generic placeholder.
	Name      string
	County    string
	Zip       string
	Household int
	USDA      model.TriState
	// TimeLabel is the visit's local clock time, e.g. "3:04 PM".
	TimeLabel string
	// AddedLabel is the formatted added date/time.
	AddedLabel string
	// SearchName is the lower-cased name used for substring matching.
	SearchName string
	// SortTime is the added timestamp in unix milliseconds, falling
	// back to the visit timestamp; 0 when neither is present.
	SortTime int64
}

// Build joins each visit for a day with its client record. Missing
// clients fall back to the visit's snapshot fields; household size
// always comes from the visit, since it is visit-specific.
func Build(visits []model.Visit, clientsByID map[string]model.Client) []Row {
	out := make([]Row, 0, len(visits))
	for _, v := range visits {
		r := Row{
			VisitID:   v.ID,
			ClientID:  v.ClientID,
			Household: v.Persons(),
			USDA:      v.USDAFirstTimeThisMonth,
		}

		c, ok := clientsByID[v.ClientID]
		if ok && v.ClientID != "" {
			r.Name = c.FullName()
			r.County = c.County
			r.Zip = c.Zip
		}
		if r.Name == "" {
			r.Name = strings.TrimSpace(v.ClientFirstName + " " + v.ClientLastName)
		}
		if r.Name == "" {
			r.Name = placeholderName
		}
		// Per-visit county/zip snapshots override the live record.
		if v.ClientCounty != "" {
			r.County = v.ClientCounty
		}
		if v.ClientZip != "" {
			r.Zip = v.ClientZip
		}
		r.SearchName = strings.ToLower(r.Name)

		if !v.VisitAt.IsZero() {
			r.TimeLabel = v.VisitAt.Local().Format("3:04 PM")
		}
		if added := v.AddedTime(); !added.IsZero() {
			r.AddedLabel = added.Local().Format("1/2/2006 3:04 PM")
			r.SortTime = added.UnixMilli()
		}

		out = append(out, r)
	}
	return out
}

// USDAFilter selects rows by their first-visit-this-month flag.
type USDAFilter string

const (
	USDAAll USDAFilter = "all"
	USDAYes USDAFilter = "yes"
	USDANo  USDAFilter = "no"
)

// Options control FilterAndSort. Zero values mean: no USDA filtering,
// no search, sort by name ascending.
type Options struct {
	USDA    USDAFilter
	Search  string
	SortKey string // "name", "hh", or "time"
	SortDir string // "asc" or "desc"
}

// FilterAndSort narrows rows by the USDA filter and search term, then
// sorts them. Rows with an Unknown flag are excluded from both the
// "yes" and "no" filters. Search matches name, county, or zip,
// case-insensitively. Sorting is stable, so ties keep input order.
func FilterAndSort(in []Row, opts Options) []Row {
	out := make([]Row, 0, len(in))
	term := strings.ToLower(strings.TrimSpace(opts.Search))
	for _, r := range in {
		switch opts.USDA {
		case USDAYes:
			if r.USDA != model.Yes {
				continue
			}
		case USDANo:
			if r.USDA != model.No {
				continue
			}
		}
		if term != "" && !matches(r, term) {
			continue
		}
		out = append(out, r)
	}

	desc := opts.SortDir == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if desc {
			a, b = b, a
		}
		switch opts.SortKey {
		case "hh":
			return a.Household < b.Household
		case "time":
			return a.SortTime < b.SortTime
		default:
			return a.SearchName < b.SearchName
		}
	})
	return out
}

func matches(r Row, term string) bool {
	return strings.Contains(r.SearchName, term) ||
		strings.Contains(strings.ToLower(r.County), term) ||
		strings.Contains(strings.ToLower(r.Zip), term)
}
