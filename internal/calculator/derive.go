package calculator

import (
	"fmt"
	"strings"
	"time"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
)

// WeekBucket returns the Monday-Sunday week label and the week start date for
// an appointment date. The label is composed manually so the output is
// identical across operating systems.
func WeekBucket(date time.Time) (string, time.Time) {
	// Monday=0 .. Sunday=6
	weekdayIndex := (int(date.Weekday()) + 6) % 7
	start := date.AddDate(0, 0, -weekdayIndex)
	end := start.AddDate(0, 0, 6)
	return weekLabel(start, end), start
}

// weekLabel formats "M/D/YYYY - M/D/YYYY" without zero padding.
func weekLabel(start, end time.Time) string {
	return fmt.Sprintf("%d/%d/%d - %d/%d/%d",
		int(start.Month()), start.Day(), start.Year(),
		int(end.Month()), end.Day(), end.Year())
}

// ClassifyCancelBucket maps free-text appointment status to a cancellation
// bucket. Case-insensitive substring match, first rule wins; a status
// containing both "client" and "cancel" is a Client Cancellation.
func ClassifyCancelBucket(status string) model.CancelBucket {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "no show") || strings.Contains(s, "last minute"):
		return model.BucketLastMinute
	case strings.Contains(s, "client"):
		return model.BucketClientCancel
	case strings.Contains(s, "staff"):
		return model.BucketStaffCancel
	case strings.Contains(s, "cancel"):
		return model.BucketOtherCancel
	default:
		return model.BucketActive
	}
}

// ClassifyCompleted maps the completed column to the strict binary flag.
// Only the exact literal "yes" (trimmed, lowercased) counts as completed.
func ClassifyCompleted(text string) model.CompletedFlag {
	if strings.ToLower(strings.TrimSpace(text)) == "yes" {
		return model.FlagYes
	}
	return model.FlagBlank
}

// DeriveFields fills the derived columns of every record in place: week
// bucket, billing-hours fallback, completion flag and cancellation bucket.
func DeriveFields(records []*model.AppointmentRecord) {
	for _, rec := range records {
		// Rows without an appointment date stay out of week bucketing
		if rec.ApptDate != nil {
			rec.Week, rec.WeekStart = WeekBucket(*rec.ApptDate)
		}

		if rec.BillingHours == nil && rec.StartAt != nil && rec.EndAt != nil {
			hours := rec.EndAt.Sub(*rec.StartAt).Hours()
			if hours >= 0 {
				rec.BillingHours = &hours
			}
		}

		rec.CompletedFlag = ClassifyCompleted(rec.Completed)
		rec.CancelBucket = ClassifyCancelBucket(rec.Status)
	}
}
