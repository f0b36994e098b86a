package model

import "time"

// Client represents a registered household contact. Client records are
// owned by the registry collaborator; the engine treats them as
// read-only reference data.
type Client struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"orgId,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Zip       string    `json:"zip,omitempty"`
	County    string    `json:"county,omitempty"`
	DOB       string    `json:"dob,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName returns "First Last" with either part optional.
func (c Client) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
