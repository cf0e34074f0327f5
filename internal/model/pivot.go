package model

import "time"

// CancelBucket 5-way appointment disposition classification.
type CancelBucket string

const (
	BucketActive       CancelBucket = "Active"
	BucketClientCancel CancelBucket = "Client Cancellation"
	BucketStaffCancel  CancelBucket = "Staff Cancellation"
	BucketLastMinute   CancelBucket = "Last Minute Client Cancel/No Show"
	BucketOtherCancel  CancelBucket = "Other Cancellation"
)

// AllCancelBuckets fixes the column order of bucket sub-columns in reports.
var AllCancelBuckets = []CancelBucket{
	BucketActive,
	BucketClientCancel,
	BucketStaffCancel,
	BucketLastMinute,
	BucketOtherCancel,
}

// CancellationBuckets are the four non-Active buckets that count toward the
// cancellation total.
var CancellationBuckets = []CancelBucket{
	BucketClientCancel,
	BucketStaffCancel,
	BucketLastMinute,
	BucketOtherCancel,
}

// IsCancellation reports whether the bucket counts toward the cancellation total.
func (b CancelBucket) IsCancellation() bool {
	return b != BucketActive
}

// CompletedFlag strict binary completion classification.
type CompletedFlag string

const (
	FlagYes   CompletedFlag = "Yes"
	FlagBlank CompletedFlag = "(blank)"
)

// AllCompletedFlags fixes the column-group order: "Yes" group before "(blank)".
var AllCompletedFlags = []CompletedFlag{FlagYes, FlagBlank}

// CellKey addresses one pivot cell: a (completion flag, cancellation bucket) pair.
type CellKey struct {
	Flag   CompletedFlag
	Bucket CancelBucket
}

// AllCellKeys returns every flag × bucket combination in display order.
// Every pivot row carries the full dense set, absent combinations hold 0.
func AllCellKeys() []CellKey {
	keys := make([]CellKey, 0, len(AllCompletedFlags)*len(AllCancelBuckets))
	for _, flag := range AllCompletedFlags {
		for _, bucket := range AllCancelBuckets {
			keys = append(keys, CellKey{Flag: flag, Bucket: bucket})
		}
	}
	return keys
}

// PivotRow is one (week, coordinator) output row of the weekly pivot.
type PivotRow struct {
	Week        string    `json:"week"`
	WeekStart   time.Time `json:"weekStart"`
	Coordinator string    `json:"coordinator"`

	Cells map[CellKey]float64 `json:"-"` // dense, keyed by flag × bucket

	YesTotal      float64 `json:"yesTotal"`
	BlankTotal    float64 `json:"blankTotal"`
	GrandTotal    float64 `json:"grandTotal"`
	CancelTotal   float64 `json:"cancelTotal"`
	CancelPercent float64 `json:"cancelPercent"`

	// Week-over-week deltas per coordinator; nil on the coordinator's first week.
	YesTotalDiff    *float64 `json:"yesTotalDiff"`
	GrandTotalDiff  *float64 `json:"grandTotalDiff"`
	CancelTotalDiff *float64 `json:"cancelTotalDiff"`
}

// Cell returns the billed-hours sum for a cell, 0 for absent keys.
func (r *PivotRow) Cell(key CellKey) float64 {
	if r.Cells == nil {
		return 0
	}
	return r.Cells[key]
}

// TotalsRow is the synthetic grand-total row summing every numeric column.
// The percentage is recomputed from the summed totals, never summed itself.
type TotalsRow struct {
	Cells map[CellKey]float64 `json:"-"`

	YesTotal      float64 `json:"yesTotal"`
	BlankTotal    float64 `json:"blankTotal"`
	GrandTotal    float64 `json:"grandTotal"`
	CancelTotal   float64 `json:"cancelTotal"`
	CancelPercent float64 `json:"cancelPercent"`

	YesTotalDiff    float64 `json:"yesTotalDiff"`
	GrandTotalDiff  float64 `json:"grandTotalDiff"`
	CancelTotalDiff float64 `json:"cancelTotalDiff"`
}

// Cell returns the summed value for a cell, 0 for absent keys.
func (t *TotalsRow) Cell(key CellKey) float64 {
	if t.Cells == nil {
		return 0
	}
	return t.Cells[key]
}

// PivotReport is the complete result of one report generation.
type PivotReport struct {
	Rows   []*PivotRow `json:"rows"`
	Totals TotalsRow   `json:"totals"`
}
