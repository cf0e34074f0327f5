// Package exporter writes the pivot report as a flat xlsx workbook: one
// header row, no merged cells, suitable for further spreadsheet work.
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
)

// SheetName is the single sheet of the export.
const SheetName = "Pivot"

// Export builds the flat workbook for a pivot report.
func Export(report *model.PivotReport) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetName)

	headers := buildHeaders()
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(SheetName, 1, 1, headerStyle)

	for i, row := range report.Rows {
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	totalsRowNum := len(report.Rows) + 2
	if err := writeTotalsRow(f, totalsRowNum, &report.Totals); err != nil {
		return nil, err
	}

	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#EFE6C8"}, Pattern: 1},
	})
	f.SetRowStyle(SheetName, totalsRowNum, totalsRowNum, totalStyle)

	f.SetColWidth(SheetName, "A", "A", 24)
	f.SetColWidth(SheetName, "B", "B", 26)
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetColWidth(SheetName, "C", lastCol, 14)

	return f, nil
}

// buildHeaders flattens the two-tier grid into "flag | bucket" column names,
// followed by the derived and difference columns.
func buildHeaders() []string {
	headers := []string{"Week", "Case Coordinator Name"}
	for _, flag := range model.AllCompletedFlags {
		for _, bucket := range model.AllCancelBuckets {
			headers = append(headers, fmt.Sprintf("%s | %s", flag, bucket))
		}
		headers = append(headers, fmt.Sprintf("%s Total", flag))
	}
	headers = append(headers,
		"Grand Total",
		"Cancellation Total",
		"Cancellation Percentage",
		"Yes Total Diff",
		"Grand Total Diff",
		"Cancellation Total Diff",
	)
	return headers
}

func writeRow(f *excelize.File, rowNum int, row *model.PivotRow) error {
	values := []interface{}{row.Week, row.Coordinator}
	for _, flag := range model.AllCompletedFlags {
		for _, bucket := range model.AllCancelBuckets {
			values = append(values, row.Cell(model.CellKey{Flag: flag, Bucket: bucket}))
		}
		if flag == model.FlagYes {
			values = append(values, row.YesTotal)
		} else {
			values = append(values, row.BlankTotal)
		}
	}
	values = append(values, row.GrandTotal, row.CancelTotal, row.CancelPercent)
	// Nil diffs (first week per coordinator) stay empty cells
	values = append(values, diffValue(row.YesTotalDiff), diffValue(row.GrandTotalDiff), diffValue(row.CancelTotalDiff))

	return setRow(f, rowNum, values)
}

func writeTotalsRow(f *excelize.File, rowNum int, totals *model.TotalsRow) error {
	values := []interface{}{"Grand Total", ""}
	for _, flag := range model.AllCompletedFlags {
		for _, bucket := range model.AllCancelBuckets {
			values = append(values, totals.Cell(model.CellKey{Flag: flag, Bucket: bucket}))
		}
		if flag == model.FlagYes {
			values = append(values, totals.YesTotal)
		} else {
			values = append(values, totals.BlankTotal)
		}
	}
	values = append(values,
		totals.GrandTotal,
		totals.CancelTotal,
		totals.CancelPercent,
		totals.YesTotalDiff,
		totals.GrandTotalDiff,
		totals.CancelTotalDiff,
	)

	return setRow(f, rowNum, values)
}

func setRow(f *excelize.File, rowNum int, values []interface{}) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func diffValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
