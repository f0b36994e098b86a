package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/evergreenpantry/pantryledger/internal/model"
)

// VisitStore is the reference visit collaborator over SQLite. It
// satisfies source.VisitSource; the hosted-database collaborator
// replaces it in production deployments.
type VisitStore struct {
	db *sql.DB
}

func NewVisitStore(db *sql.DB) *VisitStore {
	return &VisitStore{db: db}
}

const visitColumns = `id, org_id, location_id, client_id, date_key, month_key,
	household_size, usda_first_time, visit_at, added_at, created_at,
	client_first_name, client_last_name, client_county, client_zip`

// Create inserts a visit record. The month key is derived from the date
// key when the caller did not set it.
func (s *VisitStore) Create(v model.Visit) (*model.Visit, error) {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO visits (`+visitColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.OrgID, v.LocationID, v.ClientID, v.DateKey, v.MonthKeyOrDerived(),
		int(v.HouseholdSize), v.USDAFirstTimeThisMonth.Wire(),
		nullTime(v.VisitAt), nullTime(v.AddedAt), v.CreatedAt.UTC(),
		v.ClientFirstName, v.ClientLastName, v.ClientCounty, v.ClientZip,
	)
	if err != nil {
		return nil, fmt.Errorf("insert visit: %w", err)
	}

	return s.GetByID(v.ID)
}

func (s *VisitStore) GetByID(id string) (*model.Visit, error) {
	row := s.db.QueryRow(`SELECT `+visitColumns+` FROM visits WHERE id = ?`, id)
	v, err := scanVisit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query visit: %w", err)
	}
	return v, nil
}

// VisitsForMonth returns the visits for one org/location/month scope.
// An empty location matches every location in the org.
func (s *VisitStore) VisitsForMonth(orgID, locationID, monthKey string) ([]model.Visit, error) {
	return s.list(
		`SELECT `+visitColumns+` FROM visits
		 WHERE org_id = ? AND (? = '' OR location_id = ?) AND month_key = ?
		 ORDER BY date_key, added_at`,
		orgID, locationID, locationID, monthKey,
	)
}

// VisitsForDay returns the visits for a single calendar day.
func (s *VisitStore) VisitsForDay(orgID, locationID, dateKey string) ([]model.Visit, error) {
	return s.list(
		`SELECT `+visitColumns+` FROM visits
		 WHERE org_id = ? AND (? = '' OR location_id = ?) AND date_key = ?
		 ORDER BY added_at`,
		orgID, locationID, locationID, dateKey,
	)
}

// Update edits the per-visit fields the logging UI allows changing.
func (s *VisitStore) Update(id string, householdSize int, usda model.TriState, county, zip string) (*model.Visit, error) {
	if householdSize < 0 {
		householdSize = 0
	}
	_, err := s.db.Exec(
		`UPDATE visits SET household_size = ?, usda_first_time = ?, client_county = ?, client_zip = ?
		 WHERE id = ?`,
		householdSize, usda.Wire(), county, zip, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update visit: %w", err)
	}
	return s.GetByID(id)
}

func (s *VisitStore) Delete(id string) error {
	if _, err := s.db.Exec("DELETE FROM visits WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete visit: %w", err)
	}
	return nil
}

// DeleteByDay removes every visit on a day for a scope and reports how
// many rows went away.
func (s *VisitStore) DeleteByDay(orgID, locationID, dateKey string) (int64, error) {
	res, err := s.db.Exec(
		"DELETE FROM visits WHERE org_id = ? AND (? = '' OR location_id = ?) AND date_key = ?",
		orgID, locationID, locationID, dateKey,
	)
	if err != nil {
		return 0, fmt.Errorf("delete visits by day: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (s *VisitStore) list(query string, args ...any) ([]model.Visit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var visits []model.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, *v)
	}
	return visits, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisit(row rowScanner) (*model.Visit, error) {
	var v model.Visit
	var household int
	var usda string
	var visitAt, addedAt sql.NullTime

	err := row.Scan(
		&v.ID, &v.OrgID, &v.LocationID, &v.ClientID, &v.DateKey, &v.MonthKey,
		&household, &usda, &visitAt, &addedAt, &v.CreatedAt,
		&v.ClientFirstName, &v.ClientLastName, &v.ClientCounty, &v.ClientZip,
	)
	if err != nil {
		return nil, err
	}

	if household < 0 {
		household = 0
	}
	v.HouseholdSize = model.LenientSize(household)
	v.USDAFirstTimeThisMonth = model.TriStateFromWire(usda)
	if visitAt.Valid {
		v.VisitAt = visitAt.Time
	}
	if addedAt.Valid {
		v.AddedAt = addedAt.Time
	}
	return &v, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
