package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
)

func appt(day time.Time, coordinator string, completed, status string, hours float64) *model.AppointmentRecord {
	rec := &model.AppointmentRecord{
		ApptDate:     &day,
		Completed:    completed,
		Status:       status,
		Coordinator:  coordinator,
		BillingHours: &hours,
	}
	DeriveFields([]*model.AppointmentRecord{rec})
	return rec
}

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildPivot_RoundTrip(t *testing.T) {
	day := date(2025, time.September, 3)
	records := []*model.AppointmentRecord{
		appt(day, "Alice Smith", "Yes", "Completed", 2.5),
		appt(day, "Alice Smith", "", "Client Cancelled", 1.0),
	}

	report := BuildPivot(records)

	if len(report.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(report.Rows))
	}
	row := report.Rows[0]

	if row.Week != "9/1/2025 - 9/7/2025" {
		t.Errorf("Week = %q", row.Week)
	}
	if !floatEquals(row.YesTotal, 2.5) {
		t.Errorf("YesTotal = %v, want 2.5", row.YesTotal)
	}
	if !floatEquals(row.BlankTotal, 1.0) {
		t.Errorf("BlankTotal = %v, want 1.0", row.BlankTotal)
	}
	if !floatEquals(row.GrandTotal, 3.5) {
		t.Errorf("GrandTotal = %v, want 3.5", row.GrandTotal)
	}
	if !floatEquals(row.CancelTotal, 1.0) {
		t.Errorf("CancelTotal = %v, want 1.0", row.CancelTotal)
	}
	if !floatEquals(row.CancelPercent, 28.57) {
		t.Errorf("CancelPercent = %v, want 28.57", row.CancelPercent)
	}
}

func TestBuildPivot_DenseCells(t *testing.T) {
	day := date(2025, time.September, 3)
	report := BuildPivot([]*model.AppointmentRecord{
		appt(day, "Alice Smith", "Yes", "Completed", 1.0),
	})

	row := report.Rows[0]
	if len(row.Cells) != 10 {
		t.Fatalf("cells = %d, want the dense 10", len(row.Cells))
	}
	for _, key := range model.AllCellKeys() {
		if _, ok := row.Cells[key]; !ok {
			t.Errorf("cell %v missing", key)
		}
	}
	if v := row.Cell(model.CellKey{Flag: model.FlagBlank, Bucket: model.BucketStaffCancel}); v != 0 {
		t.Errorf("absent combination = %v, want 0", v)
	}
}

func TestBuildPivot_GrandTotalInvariant(t *testing.T) {
	day1 := date(2025, time.September, 1)
	day2 := date(2025, time.September, 9)
	records := []*model.AppointmentRecord{
		appt(day1, "Alice Smith", "Yes", "Completed", 2.0),
		appt(day1, "Bob Jones", "", "Staff Cancelled", 1.5),
		appt(day2, "Alice Smith", "", "No Show", 0.5),
		appt(day2, "", "Yes", "Completed", 3.0), // orphan coordinator
	}

	report := BuildPivot(records)

	for _, row := range report.Rows {
		if !floatEquals(row.GrandTotal, row.YesTotal+row.BlankTotal) {
			t.Errorf("row %q/%q: GrandTotal %v != YesTotal %v + BlankTotal %v",
				row.Week, row.Coordinator, row.GrandTotal, row.YesTotal, row.BlankTotal)
		}
		if row.CancelPercent < 0 || row.CancelPercent > 100 {
			t.Errorf("row %q/%q: CancelPercent %v out of [0,100]", row.Week, row.Coordinator, row.CancelPercent)
		}
	}
	totals := report.Totals
	if !floatEquals(totals.GrandTotal, totals.YesTotal+totals.BlankTotal) {
		t.Errorf("totals: GrandTotal %v != YesTotal %v + BlankTotal %v",
			totals.GrandTotal, totals.YesTotal, totals.BlankTotal)
	}
}

func TestBuildPivot_OrphanRowsRetained(t *testing.T) {
	day := date(2025, time.September, 3)
	report := BuildPivot([]*model.AppointmentRecord{
		appt(day, "", "Yes", "Completed", 1.0),
	})

	if len(report.Rows) != 1 {
		t.Fatalf("orphan row dropped")
	}
	if report.Rows[0].Coordinator != "" {
		t.Errorf("Coordinator = %q, want empty", report.Rows[0].Coordinator)
	}
}

func TestBuildPivot_ZeroGrandTotalPercent(t *testing.T) {
	day := date(2025, time.September, 3)
	report := BuildPivot([]*model.AppointmentRecord{
		appt(day, "Alice Smith", "", "Client Cancelled", 0),
	})

	row := report.Rows[0]
	if row.GrandTotal != 0 {
		t.Fatalf("GrandTotal = %v, want 0", row.GrandTotal)
	}
	if row.CancelPercent != 0 {
		t.Errorf("CancelPercent = %v, want 0 (not NaN)", row.CancelPercent)
	}
	if math.IsNaN(report.Totals.CancelPercent) || math.IsInf(report.Totals.CancelPercent, 0) {
		t.Errorf("totals CancelPercent = %v", report.Totals.CancelPercent)
	}
}

func TestBuildPivot_DiffColumns(t *testing.T) {
	// Three consecutive weeks for one coordinator
	w1 := date(2025, time.September, 1)
	w2 := date(2025, time.September, 8)
	w3 := date(2025, time.September, 15)
	records := []*model.AppointmentRecord{
		appt(w1, "Alice Smith", "Yes", "Completed", 2.0),
		appt(w2, "Alice Smith", "Yes", "Completed", 3.5),
		appt(w2, "Alice Smith", "", "Client Cancelled", 1.0),
		appt(w3, "Alice Smith", "Yes", "Completed", 1.0),
	}

	report := BuildPivot(records)
	if len(report.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(report.Rows))
	}

	first, second, third := report.Rows[0], report.Rows[1], report.Rows[2]

	if first.YesTotalDiff != nil || first.GrandTotalDiff != nil || first.CancelTotalDiff != nil {
		t.Errorf("first week must have nil diffs")
	}
	if second.GrandTotalDiff == nil || !floatEquals(*second.GrandTotalDiff, 2.5) {
		t.Errorf("second GrandTotalDiff = %v, want 2.5", second.GrandTotalDiff)
	}
	if second.CancelTotalDiff == nil || !floatEquals(*second.CancelTotalDiff, 1.0) {
		t.Errorf("second CancelTotalDiff = %v, want 1.0", second.CancelTotalDiff)
	}
	if third.YesTotalDiff == nil || !floatEquals(*third.YesTotalDiff, -2.5) {
		t.Errorf("third YesTotalDiff = %v, want -2.5", third.YesTotalDiff)
	}
	if third.GrandTotalDiff == nil || !floatEquals(*third.GrandTotalDiff, -3.5) {
		t.Errorf("third GrandTotalDiff = %v, want -3.5", third.GrandTotalDiff)
	}
}

func TestBuildPivot_DiffsChronologicalAcrossMonths(t *testing.T) {
	// "9/29/2025" sorts after "10/6/2025" as text; the diff pass must use
	// date order, not label order.
	sep := date(2025, time.September, 29)
	oct := date(2025, time.October, 6)
	records := []*model.AppointmentRecord{
		appt(oct, "Alice Smith", "Yes", "Completed", 5.0),
		appt(sep, "Alice Smith", "Yes", "Completed", 2.0),
	}

	report := BuildPivot(records)

	if report.Rows[0].Week != "9/29/2025 - 10/5/2025" {
		t.Fatalf("first row = %q, rows must sort chronologically", report.Rows[0].Week)
	}
	second := report.Rows[1]
	if second.GrandTotalDiff == nil || !floatEquals(*second.GrandTotalDiff, 3.0) {
		t.Errorf("october GrandTotalDiff = %v, want 3.0 (5.0 - 2.0)", second.GrandTotalDiff)
	}
	if report.Rows[0].GrandTotalDiff != nil {
		t.Errorf("september (the true first week) must have a nil diff")
	}
}

func TestBuildPivot_OutputOrdering(t *testing.T) {
	w1 := date(2025, time.September, 1)
	w2 := date(2025, time.September, 8)
	records := []*model.AppointmentRecord{
		appt(w2, "Bob Jones", "Yes", "Completed", 1.0),
		appt(w1, "Bob Jones", "Yes", "Completed", 1.0),
		appt(w1, "Alice Smith", "Yes", "Completed", 1.0),
	}

	report := BuildPivot(records)

	got := make([][2]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		got = append(got, [2]string{row.Week, row.Coordinator})
	}
	want := [][2]string{
		{"9/1/2025 - 9/7/2025", "Alice Smith"},
		{"9/1/2025 - 9/7/2025", "Bob Jones"},
		{"9/8/2025 - 9/14/2025", "Bob Jones"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuildPivot_RowsWithoutWeekExcluded(t *testing.T) {
	rec := &model.AppointmentRecord{Status: "Completed"} // no appt date
	DeriveFields([]*model.AppointmentRecord{rec})

	report := BuildPivot([]*model.AppointmentRecord{rec})
	if len(report.Rows) != 0 {
		t.Fatalf("rows = %d, want 0 (no week bucket)", len(report.Rows))
	}
}

func TestBuildPivot_NullHoursAggregateAsZero(t *testing.T) {
	day := date(2025, time.September, 3)
	rec := &model.AppointmentRecord{
		ApptDate:  &day,
		Completed: "Yes",
	}
	DeriveFields([]*model.AppointmentRecord{rec})

	report := BuildPivot([]*model.AppointmentRecord{rec})
	if len(report.Rows) != 1 {
		t.Fatalf("row missing")
	}
	if report.Rows[0].GrandTotal != 0 {
		t.Errorf("GrandTotal = %v, want 0 for a null-hours row", report.Rows[0].GrandTotal)
	}
}
