package calculator

import (
	"math"
	"sort"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
)

// BuildPivot aggregates derived, resolved appointment records into the weekly
// cancellation pivot. Rows without a week bucket (no appointment date) are
// excluded. Output ordering is week-start date ascending, then coordinator
// name ascending.
func BuildPivot(records []*model.AppointmentRecord) *model.PivotReport {
	byKey := make(map[[2]string]*model.PivotRow)

	for _, rec := range records {
		if rec.Week == "" {
			continue
		}

		key := [2]string{rec.Week, rec.Coordinator}
		row, ok := byKey[key]
		if !ok {
			row = newPivotRow(rec)
			byKey[key] = row
		}

		cell := model.CellKey{Flag: rec.CompletedFlag, Bucket: rec.CancelBucket}
		row.Cells[cell] += rec.Hours()
	}

	rows := rows2slice(byKey)
	for _, row := range rows {
		fillRowTotals(row)
	}

	fillDiffs(rows)

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].WeekStart.Equal(rows[j].WeekStart) {
			return rows[i].WeekStart.Before(rows[j].WeekStart)
		}
		return rows[i].Coordinator < rows[j].Coordinator
	})

	return &model.PivotReport{
		Rows:   rows,
		Totals: buildTotals(rows),
	}
}

func newPivotRow(rec *model.AppointmentRecord) *model.PivotRow {
	row := &model.PivotRow{
		Week:        rec.Week,
		WeekStart:   rec.WeekStart,
		Coordinator: rec.Coordinator,
		Cells:       make(map[model.CellKey]float64, 10),
	}
	// Dense cells: every flag × bucket combination starts at 0
	for _, key := range model.AllCellKeys() {
		row.Cells[key] = 0
	}
	return row
}

func rows2slice(byKey map[[2]string]*model.PivotRow) []*model.PivotRow {
	rows := make([]*model.PivotRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, row)
	}
	return rows
}

// fillRowTotals computes the subtotal, grand total and cancellation columns.
func fillRowTotals(row *model.PivotRow) {
	row.YesTotal = 0
	row.BlankTotal = 0
	row.CancelTotal = 0

	for key, hours := range row.Cells {
		if key.Flag == model.FlagYes {
			row.YesTotal += hours
		} else {
			row.BlankTotal += hours
		}
		if key.Bucket.IsCancellation() {
			row.CancelTotal += hours
		}
	}

	row.GrandTotal = row.YesTotal + row.BlankTotal
	row.CancelPercent = cancelPercent(row.CancelTotal, row.GrandTotal)
}

// cancelPercent is round(cancel/grand*100, 2); defined as 0 for a zero grand
// total instead of NaN.
func cancelPercent(cancelTotal, grandTotal float64) float64 {
	if grandTotal == 0 {
		return 0
	}
	return round2(cancelTotal / grandTotal * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// fillDiffs computes the week-over-week delta columns. Rows are grouped per
// coordinator and walked in true chronological order (by week start date, not
// by label text); the coordinator's first week keeps nil diffs.
func fillDiffs(rows []*model.PivotRow) {
	byCoordinator := make(map[string][]*model.PivotRow)
	for _, row := range rows {
		byCoordinator[row.Coordinator] = append(byCoordinator[row.Coordinator], row)
	}

	for _, group := range byCoordinator {
		sort.Slice(group, func(i, j int) bool {
			return group[i].WeekStart.Before(group[j].WeekStart)
		})

		for i := 1; i < len(group); i++ {
			prev, cur := group[i-1], group[i]
			cur.YesTotalDiff = diff(cur.YesTotal, prev.YesTotal)
			cur.GrandTotalDiff = diff(cur.GrandTotal, prev.GrandTotal)
			cur.CancelTotalDiff = diff(cur.CancelTotal, prev.CancelTotal)
		}
	}
}

func diff(cur, prev float64) *float64 {
	d := cur - prev
	return &d
}

// buildTotals sums every numeric column into the synthetic grand-total row.
// The cancellation percentage is recomputed from the summed totals; nil diffs
// contribute 0.
func buildTotals(rows []*model.PivotRow) model.TotalsRow {
	totals := model.TotalsRow{
		Cells: make(map[model.CellKey]float64, 10),
	}
	for _, key := range model.AllCellKeys() {
		totals.Cells[key] = 0
	}

	for _, row := range rows {
		for key, hours := range row.Cells {
			totals.Cells[key] += hours
		}
		totals.YesTotal += row.YesTotal
		totals.BlankTotal += row.BlankTotal
		totals.GrandTotal += row.GrandTotal
		totals.CancelTotal += row.CancelTotal

		if row.YesTotalDiff != nil {
			totals.YesTotalDiff += *row.YesTotalDiff
		}
		if row.GrandTotalDiff != nil {
			totals.GrandTotalDiff += *row.GrandTotalDiff
		}
		if row.CancelTotalDiff != nil {
			totals.CancelTotalDiff += *row.CancelTotalDiff
		}
	}

	totals.CancelPercent = cancelPercent(totals.CancelTotal, totals.GrandTotal)
	return totals
}
