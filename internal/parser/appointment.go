package parser

import (
	"io"
	"strings"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
)

// Aloha appointment billing export columns (normalized form)
const (
	colApptDate     = "appt. date"
	colApptStart    = "appt. start time"
	colApptEnd      = "appt. end time"
	colBillingHours = "billing hours"
	colCompleted    = "completed"
	colApptStatus   = "appointment status"
	colInsuredID    = "insured id"
	colDOB          = "date of birth"
)

// RequiredAppointmentColumns lists the columns the appointment file must carry.
var RequiredAppointmentColumns = []string{
	colApptDate,
	colApptStart,
	colApptEnd,
	colBillingHours,
	colCompleted,
	colApptStatus,
	colInsuredID,
	colDOB,
}

// ParseAppointments reads the Aloha appointment billing export. Missing
// required columns fail the run; bad cell values coerce to nil and flow on.
func ParseAppointments(reader io.Reader) ([]*model.AppointmentRecord, error) {
	tbl, err := loadTable(reader, "appointment", RequiredAppointmentColumns)
	if err != nil {
		return nil, err
	}

	records := make([]*model.AppointmentRecord, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		dateText := tbl.cell(row, colApptDate)

		rec := &model.AppointmentRecord{
			ApptDate:     ParseDate(dateText),
			StartAt:      CombineDateTime(dateText, tbl.cell(row, colApptStart)),
			EndAt:        CombineDateTime(dateText, tbl.cell(row, colApptEnd)),
			BillingHours: ParseFloat(tbl.cell(row, colBillingHours)),
			Completed:    tbl.cell(row, colCompleted),
			Status:       tbl.cell(row, colApptStatus),
			InsuredID:    strings.TrimSpace(tbl.cell(row, colInsuredID)),
			DOB:          ParseDate(tbl.cell(row, colDOB)),
		}
		records = append(records, rec)
	}

	return records, nil
}
