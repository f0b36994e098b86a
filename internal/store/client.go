package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/evergreenpantry/pantryledger/internal/model"
)

// ClientStore is the reference client-registry collaborator over SQLite.
// It satisfies source.ClientDirectory.
type ClientStore struct {
	db *sql.DB
}

func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

const clientColumns = `id, org_id, first_name, last_name, phone, address, zip, county, dob, updated_at`

func (s *ClientStore) Create(c model.Client) (*model.Client, error) {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OrgID, c.FirstName, c.LastName, c.Phone, c.Address, c.Zip, c.County, c.DOB, c.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}

	return s.ClientByID(c.ID)
}

func (s *ClientStore) ClientByID(id string) (*model.Client, error) {
	var c model.Client
	err := s.db.QueryRow(
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id,
	).Scan(&c.ID, &c.OrgID, &c.FirstName, &c.LastName, &c.Phone, &c.Address, &c.Zip, &c.County, &c.DOB, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query client: %w", err)
	}
	return &c, nil
}

func (s *ClientStore) ClientsForOrg(orgID string) ([]model.Client, error) {
	rows, err := s.db.Query(
		`SELECT `+clientColumns+` FROM clients WHERE org_id = ? ORDER BY last_name, first_name`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.OrgID, &c.FirstName, &c.LastName, &c.Phone, &c.Address, &c.Zip, &c.County, &c.DOB, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Touch bumps a client's last-updated timestamp, which feeds the search
// ranking recency bonus.
func (s *ClientStore) Touch(id string, at time.Time) error {
	if _, err := s.db.Exec("UPDATE clients SET updated_at = ? WHERE id = ?", at.UTC(), id); err != nil {
		return fmt.Errorf("touch client: %w", err)
	}
	return nil
}
