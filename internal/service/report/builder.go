// Package report runs the full pipeline for one report generation:
// parse → derive → resolve → pivot. It is a pure function of the two
// uploads; nothing is shared between runs.
package report

import (
	"io"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/calculator"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/parser"
)

// Result is the outcome of one report generation.
type Result struct {
	Report   *model.PivotReport
	ApptRows int // appointment rows parsed from the upload
	Weeks    int // distinct week buckets in the pivot
}

// Build generates the weekly cancellation pivot from the two uploaded
// workbooks. The only fatal conditions are unreadable files and missing
// required columns; bad cell values degrade to null per field.
func Build(apptReader, rosterReader io.Reader) (*Result, error) {
	appointments, err := parser.ParseAppointments(apptReader)
	if err != nil {
		return nil, err
	}

	roster, err := parser.ParseRoster(rosterReader)
	if err != nil {
		return nil, err
	}

	calculator.DeriveFields(appointments)
	calculator.ResolveCoordinators(appointments, roster)
	pivot := calculator.BuildPivot(appointments)

	weeks := make(map[string]struct{})
	for _, row := range pivot.Rows {
		weeks[row.Week] = struct{}{}
	}

	return &Result{
		Report:   pivot,
		ApptRows: len(appointments),
		Weeks:    len(weeks),
	}, nil
}
