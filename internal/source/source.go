// Package source defines the boundary to the data collaborators that
// own visit and client records. The engine consumes whatever the last
// successful fetch produced; it never retries, caches, or subscribes on
// its own. The application wires a live-update subscription where one is
// available and falls back to a one-shot fetch through these interfaces
// when the subscription fails, surfacing the error to the user.
package source

import "github.com/evergreenpantry/pantryledger/internal/model"

// VisitSource supplies visit records scoped to an organization and
// optional location. Implementations return records as stored; the
// engine tolerates partially populated fields.
type VisitSource interface {
	VisitsForMonth(orgID, locationID, monthKey string) ([]model.Visit, error)
	VisitsForDay(orgID, locationID, dateKey string) ([]model.Visit, error)
}

// ClientDirectory supplies read-only client records.
type ClientDirectory interface {
	ClientsForOrg(orgID string) ([]model.Client, error)
	ClientByID(id string) (*model.Client, error)
}
