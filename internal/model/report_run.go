package model

import "time"

// ReportRun is one persisted report generation: metadata plus the paths of the
// saved HTML and xlsx artifacts under the data directory.
type ReportRun struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	ApptFilename   string    `json:"apptFilename"`
	RosterFilename string    `json:"rosterFilename"`
	ApptRows       int       `json:"apptRows"`
	PivotRows      int       `json:"pivotRows"`
	Weeks          int       `json:"weeks"`
	HTMLPath       string    `json:"-"`
	XLSXPath       string    `json:"-"`
}
