package model

import "time"

// AppointmentRecord is one row of the Aloha appointment billing export,
// enriched in place as it moves through the pipeline.
type AppointmentRecord struct {
	ApptDate     *time.Time `json:"apptDate"`     // parsed "appt. date", nil when unparseable
	StartAt      *time.Time `json:"startAt"`      // appt. date + appt. start time
	EndAt        *time.Time `json:"endAt"`        // appt. date + appt. end time
	BillingHours *float64   `json:"billingHours"` // nil until derived; stays nil when underivable
	Completed    string     `json:"completed"`    // raw "completed" text
	Status       string     `json:"status"`       // raw "appointment status" text
	InsuredID    string     `json:"insuredId"`
	DOB          *time.Time `json:"dob"`

	// Derived fields
	Week          string        `json:"week"` // "M/D/YYYY - M/D/YYYY"
	WeekStart     time.Time     `json:"weekStart"`
	CompletedFlag CompletedFlag `json:"completedFlag"`
	CancelBucket  CancelBucket  `json:"cancelBucket"`
	Coordinator   string        `json:"coordinator"` // empty when both joins miss
}

// Hours returns the billed hours with nil treated as zero.
// Aggregation fills on aggregate, not on derive.
func (a *AppointmentRecord) Hours() float64 {
	if a.BillingHours == nil {
		return 0
	}
	return *a.BillingHours
}
