package exporter_test

import (
	"testing"
	"time"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/calculator"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/exporter"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
)

func buildTestReport(t *testing.T) *model.PivotReport {
	t.Helper()

	day := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	hours := func(v float64) *float64 { return &v }

	records := []*model.AppointmentRecord{
		{ApptDate: day(2025, time.September, 1), Coordinator: "Alice Smith", Completed: "Yes", Status: "Completed", BillingHours: hours(2.5)},
		{ApptDate: day(2025, time.September, 1), Coordinator: "Alice Smith", Status: "Client Cancelled", BillingHours: hours(1.0)},
		{ApptDate: day(2025, time.September, 9), Coordinator: "Alice Smith", Completed: "Yes", Status: "Completed", BillingHours: hours(4.0)},
	}
	calculator.DeriveFields(records)
	return calculator.BuildPivot(records)
}

func TestExport(t *testing.T) {
	report := buildTestReport(t)

	f, err := exporter.Export(report)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exporter.SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}

	// header + 2 pivot rows + grand-total row
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	header := rows[0]
	wantHeader := []string{
		"Week", "Case Coordinator Name",
		"Yes | Active", "Yes | Client Cancellation", "Yes | Staff Cancellation",
		"Yes | Last Minute Client Cancel/No Show", "Yes | Other Cancellation", "Yes Total",
		"(blank) | Active", "(blank) | Client Cancellation", "(blank) | Staff Cancellation",
		"(blank) | Last Minute Client Cancel/No Show", "(blank) | Other Cancellation", "(blank) Total",
		"Grand Total", "Cancellation Total", "Cancellation Percentage",
		"Yes Total Diff", "Grand Total Diff", "Cancellation Total Diff",
	}
	if len(header) != len(wantHeader) {
		t.Fatalf("header has %d columns, want %d: %v", len(header), len(wantHeader), header)
	}
	for i := range wantHeader {
		if header[i] != wantHeader[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], wantHeader[i])
		}
	}
}

func TestExport_Values(t *testing.T) {
	report := buildTestReport(t)

	f, err := exporter.Export(report)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(exporter.SheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", cell, err)
		}
		return v
	}

	// First data row: week 9/1, Yes|Active 2.5, (blank)|Client 1.0
	if got := get("A2"); got != "9/1/2025 - 9/7/2025" {
		t.Errorf("A2 = %q", got)
	}
	if got := get("B2"); got != "Alice Smith" {
		t.Errorf("B2 = %q", got)
	}
	if got := get("C2"); got != "2.5" {
		t.Errorf("Yes|Active = %q, want 2.5", got)
	}
	if got := get("J2"); got != "1" {
		t.Errorf("(blank)|Client Cancellation = %q, want 1", got)
	}
	if got := get("O2"); got != "3.5" {
		t.Errorf("Grand Total = %q, want 3.5", got)
	}
	if got := get("Q2"); got != "28.57" {
		t.Errorf("Cancellation Percentage = %q, want 28.57", got)
	}

	// First week per coordinator: diff cells stay empty
	for _, cell := range []string{"R2", "S2", "T2"} {
		if got := get(cell); got != "" {
			t.Errorf("%s = %q, want empty for the first week", cell, got)
		}
	}

	// Second week: Grand Total Diff = 4.0 - 3.5
	if got := get("S3"); got != "0.5" {
		t.Errorf("S3 = %q, want 0.5", got)
	}

	// Grand-total row
	if got := get("A4"); got != "Grand Total" {
		t.Errorf("A4 = %q", got)
	}
	if got := get("O4"); got != "7.5" {
		t.Errorf("total Grand Total = %q, want 7.5", got)
	}
}
