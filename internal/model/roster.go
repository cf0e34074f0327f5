package model

import "time"

// RosterEntry is one row of the Zoho case list: a client-to-coordinator mapping.
type RosterEntry struct {
	MedicaidID  string     `json:"medicaidId"` // primary join key
	DOB         *time.Time `json:"dob"`        // fallback join key, nil when unparseable
	Coordinator string     `json:"coordinator"`
}
