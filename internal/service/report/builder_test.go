package report_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/parser"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/service/report"
)

func buildWorkbook(t *testing.T, header []interface{}, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("SetSheetRow header failed: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow row %d failed: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf
}

var apptHeader = []interface{}{
	"Appt. Date", "Appt. Start Time", "Appt. End Time",
	"Billing Hours", "Completed", "Appointment Status",
	"Insured ID", "Date of Birth",
}

var rosterHeader = []interface{}{"Medicaid ID", "Date of Birth", "Case Coordinator Name"}

func TestBuild_EndToEnd(t *testing.T) {
	appt := buildWorkbook(t, apptHeader, [][]interface{}{
		// Completed, 2.5 billed hours
		{"9/3/2025", "9:00 AM", "11:30 AM", "2.5", "Yes", "Completed", "M100", "5/1/1990"},
		// Client cancelled, billing hours derived from the 1-hour slot
		{"9/4/2025", "1:00 PM", "2:00 PM", "", "", "Client Cancelled", "M100", "5/1/1990"},
		// Unknown insured id, resolved through the DOB fallback
		{"9/5/2025", "9:00 AM", "10:30 AM", "", "Yes", "Completed", "XXX", "6/2/1985"},
	})
	roster := buildWorkbook(t, rosterHeader, [][]interface{}{
		{"M100", "5/1/1990", "Alice Smith"},
		{"M200", "6/2/1985", "Bob Jones"},
	})

	result, err := report.Build(appt, roster)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result.ApptRows != 3 {
		t.Errorf("ApptRows = %d, want 3", result.ApptRows)
	}
	if result.Weeks != 1 {
		t.Errorf("Weeks = %d, want 1", result.Weeks)
	}
	if len(result.Report.Rows) != 2 {
		t.Fatalf("pivot rows = %d, want 2 (one per coordinator)", len(result.Report.Rows))
	}

	// Sorted by week then coordinator
	alice, bob := result.Report.Rows[0], result.Report.Rows[1]
	if alice.Coordinator != "Alice Smith" || bob.Coordinator != "Bob Jones" {
		t.Fatalf("coordinators = %q, %q", alice.Coordinator, bob.Coordinator)
	}

	if alice.YesTotal != 2.5 {
		t.Errorf("Alice YesTotal = %v, want 2.5", alice.YesTotal)
	}
	if alice.BlankTotal != 1.0 {
		t.Errorf("Alice BlankTotal = %v, want 1.0 (derived from the slot)", alice.BlankTotal)
	}
	if alice.GrandTotal != 3.5 {
		t.Errorf("Alice GrandTotal = %v, want 3.5", alice.GrandTotal)
	}
	if alice.CancelPercent != 28.57 {
		t.Errorf("Alice CancelPercent = %v, want 28.57", alice.CancelPercent)
	}
	if v := alice.Cell(model.CellKey{Flag: model.FlagBlank, Bucket: model.BucketClientCancel}); v != 1.0 {
		t.Errorf("Alice (blank)|Client = %v, want 1.0", v)
	}

	// DOB fallback resolved Bob, hours derived 1.5
	if bob.YesTotal != 1.5 {
		t.Errorf("Bob YesTotal = %v, want 1.5", bob.YesTotal)
	}
}

func TestBuild_MissingColumnIsFatal(t *testing.T) {
	appt := buildWorkbook(t, []interface{}{"Appt. Date"}, nil)
	roster := buildWorkbook(t, rosterHeader, nil)

	_, err := report.Build(appt, roster)
	var missing *parser.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingColumnsError", err)
	}
}

func TestBuild_EmptyDataSets(t *testing.T) {
	appt := buildWorkbook(t, apptHeader, nil)
	roster := buildWorkbook(t, rosterHeader, nil)

	result, err := report.Build(appt, roster)
	if err != nil {
		t.Fatalf("Build failed on empty data: %v", err)
	}
	if len(result.Report.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(result.Report.Rows))
	}
	if result.Report.Totals.CancelPercent != 0 {
		t.Errorf("empty totals percent = %v, want 0", result.Report.Totals.CancelPercent)
	}
}
