package model

import (
	"bytes"
	"encoding/json"
)

// TriState is a flag with three meaningful states: Yes, No, and Unknown
// (not yet determined). The stored data encodes it as JSON true / false /
// "" respectively, and that wire form must be preserved for compatibility
// with existing records.
type TriState int

const (
	Unknown TriState = iota
	Yes
	No
)

func (t TriState) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

// Wire returns the serialized form used by stored records: "true",
// "false", or "" for Unknown.
func (t TriState) Wire() string {
	switch t {
	case Yes:
		return "true"
	case No:
		return "false"
	default:
		return ""
	}
}

// TriStateFromWire decodes the stored form. Anything other than "true"
// or "false" is Unknown.
func TriStateFromWire(s string) TriState {
	switch s {
	case "true":
		return Yes
	case "false":
		return No
	default:
		return Unknown
	}
}

// MarshalJSON encodes Yes/No as JSON booleans and Unknown as "".
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return []byte(`""`), nil
	}
}

// UnmarshalJSON accepts booleans, the strings "true"/"false", null, and
// the empty string. Anything unrecognized degrades to Unknown rather
// than failing, since upstream data is only partially populated.
func (t *TriState) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")):
		*t = Yes
	case bytes.Equal(data, []byte("false")):
		*t = No
	default:
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = TriStateFromWire(s)
			return nil
		}
		*t = Unknown
	}
	return nil
}
