// Package store holds the SQLite-backed stores: the manual service-day
// marker store, plus reference implementations of the visit and client
// data collaborators so the application runs end-to-end against a local
// database. The engine packages never import this package; they depend
// on the interfaces in internal/source and internal/overlay.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// ServiceDayStore persists manual service-day markers as a JSON array of
// date keys per scope key. It implements overlay.Store.
type ServiceDayStore struct {
	db *sql.DB
}

func NewServiceDayStore(db *sql.DB) *ServiceDayStore {
	return &ServiceDayStore{db: db}
}

// Load returns the marker list for a scope. A missing row or a payload
// that is not a valid JSON string array yields an empty set, not an
// error. Existing stored data contains both.
func (s *ServiceDayStore) Load(scopeKey string) ([]string, error) {
	var payload string
	err := s.db.QueryRow(
		"SELECT days FROM service_days WHERE scope_key = ?", scopeKey,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query service days: %w", err)
	}

	var days []string
	if err := json.Unmarshal([]byte(payload), &days); err != nil {
		return nil, nil
	}
	return days, nil
}

// Save replaces the marker list for a scope.
func (s *ServiceDayStore) Save(scopeKey string, days []string) error {
	if days == nil {
		days = []string{}
	}
	payload, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("marshal service days: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO service_days (scope_key, days, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(scope_key) DO UPDATE SET days = excluded.days, updated_at = excluded.updated_at`,
		scopeKey, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save service days: %w", err)
	}
	return nil
}

// Remove deletes a single marker from a scope's set. Removing a day
// that is not marked is a no-op.
func (s *ServiceDayStore) Remove(scopeKey, day string) error {
	days, err := s.Load(scopeKey)
	if err != nil {
		return err
	}
	kept := days[:0]
	for _, d := range days {
		if d != day {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(days) {
		return nil
	}
	return s.Save(scopeKey, kept)
}
