// Package renderer formats a pivot report as a self-contained HTML document:
// two-tier header, week-grouped body rows and a styled grand-total row.
package renderer

import (
	"fmt"
	"html"
	"strings"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/util"
)

const pivotCSS = `
    <style>
      body { margin: 0; }

      .wrap {
        background: white;
        padding: 12px;
        overflow-x: auto;
      }

      table.pivot {
        border-collapse: collapse;
        font-family: Arial, sans-serif;
        font-size: 13px;
        background: white !important;
        color: black !important;
        border: 2px solid #333;
      }

      .pivot th, .pivot td {
        border: 1px solid #999;
        padding: 6px 10px;
        white-space: nowrap;
        background: white !important;
        color: black !important;
      }

      .pivot thead th {
        font-weight: 700;
        text-align: center;
        background: #f2f2f2 !important;
        border-bottom: 2px solid #333;
      }

      .pivot td.week {
        font-weight: 700;
      }

      .pivot td.name {
        padding-left: 18px;
      }

      .pivot td.num {
        text-align: right;
      }

      .pivot th.total,
      .pivot td.totalcol {
        background: #efe6c8 !important;
        font-weight: 700;
      }

      tr.week-start td {
        border-top: 2px solid #333 !important;
      }

      tr.grand-total td {
        border-top: 3px solid #333 !important;
        font-weight: 700;
        background: #efe6c8 !important;
      }
    </style>
`

// aggregate column headers after the two bucket groups, in display order
var aggregateHeaders = []string{
	"Grand Total",
	"Cancellation Total",
	"Cancellation %",
	"Yes Total Diff",
	"Grand Total Diff",
	"Cancellation Total Diff",
}

// RenderHTML renders the report as a standalone document with no external
// assets, usable both embedded and as a downloaded file.
func RenderHTML(report *model.PivotReport) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Weekly Cancellation Pivot</title>\n")
	b.WriteString(pivotCSS)
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<div class=\"wrap\">\n<table class=\"pivot\">\n<thead>\n")
	writeHeader(&b)
	b.WriteString("</thead>\n<tbody>\n")
	writeBody(&b, report)
	writeTotalsRow(&b, &report.Totals)
	b.WriteString("</tbody>\n</table>\n</div>\n</body>\n</html>\n")

	return b.String()
}

func writeHeader(b *strings.Builder) {
	bucketCount := len(model.AllCancelBuckets)

	b.WriteString("<tr>\n")
	b.WriteString("<th rowspan=\"2\" style=\"text-align:left;\">Week W/ SC</th>\n")
	b.WriteString("<th rowspan=\"2\" style=\"text-align:left;\"></th>\n")
	fmt.Fprintf(b, "<th colspan=\"%d\">Yes</th>\n", bucketCount)
	b.WriteString("<th rowspan=\"2\" class=\"total\">Yes Total</th>\n")
	fmt.Fprintf(b, "<th colspan=\"%d\">(blank)</th>\n", bucketCount)
	b.WriteString("<th rowspan=\"2\" class=\"total\">(blank) Total</th>\n")
	for _, name := range aggregateHeaders {
		fmt.Fprintf(b, "<th rowspan=\"2\" class=\"total\">%s</th>\n", name)
	}
	b.WriteString("</tr>\n<tr>\n")
	for range model.AllCompletedFlags {
		for _, bucket := range model.AllCancelBuckets {
			fmt.Fprintf(b, "<th>%s</th>\n", html.EscapeString(string(bucket)))
		}
	}
	b.WriteString("</tr>\n")
}

func writeBody(b *strings.Builder, report *model.PivotReport) {
	prevWeek := ""
	for _, row := range report.Rows {
		weekStart := row.Week != prevWeek
		prevWeek = row.Week

		trClass := ""
		if weekStart {
			trClass = " class=\"week-start\""
		}
		fmt.Fprintf(b, "<tr%s>\n", trClass)

		// Week label only on the first row of the group
		weekCell := ""
		if weekStart {
			weekCell = row.Week
		}
		fmt.Fprintf(b, "<td class=\"week\">%s</td>\n", html.EscapeString(weekCell))
		fmt.Fprintf(b, "<td class=\"name\">%s</td>\n", html.EscapeString(row.Coordinator))

		writeCellGroup(b, row.Cell, model.FlagYes)
		writeNumCell(b, row.YesTotal, true)
		writeCellGroup(b, row.Cell, model.FlagBlank)
		writeNumCell(b, row.BlankTotal, true)

		writeNumCell(b, row.GrandTotal, true)
		writeNumCell(b, row.CancelTotal, true)
		fmt.Fprintf(b, "<td class=\"num totalcol\">%s</td>\n", util.FormatPercent(row.CancelPercent))
		writeDiffCell(b, row.YesTotalDiff)
		writeDiffCell(b, row.GrandTotalDiff)
		writeDiffCell(b, row.CancelTotalDiff)

		b.WriteString("</tr>\n")
	}
}

func writeCellGroup(b *strings.Builder, cell func(model.CellKey) float64, flag model.CompletedFlag) {
	for _, bucket := range model.AllCancelBuckets {
		writeNumCell(b, cell(model.CellKey{Flag: flag, Bucket: bucket}), false)
	}
}

func writeNumCell(b *strings.Builder, v float64, total bool) {
	class := "num"
	if total {
		class = "num totalcol"
	}
	fmt.Fprintf(b, "<td class=\"%s\">%s</td>\n", class, util.FormatNumber(v))
}

// writeDiffCell renders nil (a coordinator's first week) as an empty cell,
// never "NaN" or "None".
func writeDiffCell(b *strings.Builder, v *float64) {
	if v == nil {
		b.WriteString("<td class=\"num totalcol\"></td>\n")
		return
	}
	fmt.Fprintf(b, "<td class=\"num totalcol\">%s</td>\n", util.FormatNumber(*v))
}

func writeTotalsRow(b *strings.Builder, totals *model.TotalsRow) {
	b.WriteString("<tr class=\"grand-total\">\n")
	b.WriteString("<td class=\"week\">Grand Total</td>\n<td></td>\n")

	writeCellGroup(b, totals.Cell, model.FlagYes)
	writeNumCell(b, totals.YesTotal, true)
	writeCellGroup(b, totals.Cell, model.FlagBlank)
	writeNumCell(b, totals.BlankTotal, true)

	writeNumCell(b, totals.GrandTotal, true)
	writeNumCell(b, totals.CancelTotal, true)
	fmt.Fprintf(b, "<td class=\"num totalcol\">%s</td>\n", util.FormatPercent(totals.CancelPercent))
	writeNumCell(b, totals.YesTotalDiff, true)
	writeNumCell(b, totals.GrandTotalDiff, true)
	writeNumCell(b, totals.CancelTotalDiff, true)

	b.WriteString("</tr>\n")
}
