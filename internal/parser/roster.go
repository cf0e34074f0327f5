package parser

import (
	"io"
	"strings"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
)

// Zoho case list columns (normalized form)
const (
	colMedicaidID  = "medicaid id"
	colRosterDOB   = "date of birth"
	colCoordinator = "case coordinator name"
)

// RequiredRosterColumns lists the columns the roster file must carry.
var RequiredRosterColumns = []string{
	colMedicaidID,
	colRosterDOB,
	colCoordinator,
}

// ParseRoster reads the Zoho case list export.
func ParseRoster(reader io.Reader) ([]*model.RosterEntry, error) {
	tbl, err := loadTable(reader, "roster", RequiredRosterColumns)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.RosterEntry, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		entries = append(entries, &model.RosterEntry{
			MedicaidID:  strings.TrimSpace(tbl.cell(row, colMedicaidID)),
			DOB:         ParseDate(tbl.cell(row, colRosterDOB)),
			Coordinator: strings.TrimSpace(tbl.cell(row, colCoordinator)),
		})
	}

	return entries, nil
}
