package calculator

import (
	"time"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
)

// dobKey collapses a date of birth to a map key at day precision.
func dobKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ResolveCoordinators assigns a case coordinator to every appointment.
//
// Primary join: insured id against the roster's medicaid id (exact match,
// left join). Fallback: rows still unresolved are looked up by date of birth
// against a first-seen-wins roster index. Rows missing on both joins keep an
// empty coordinator and are retained.
func ResolveCoordinators(records []*model.AppointmentRecord, roster []*model.RosterEntry) {
	byMedicaidID := make(map[string]string, len(roster))
	byDOB := make(map[string]string)

	for _, entry := range roster {
		if entry.MedicaidID != "" {
			if _, seen := byMedicaidID[entry.MedicaidID]; !seen {
				byMedicaidID[entry.MedicaidID] = entry.Coordinator
			}
		}
		if entry.DOB != nil && entry.Coordinator != "" {
			key := dobKey(*entry.DOB)
			if _, seen := byDOB[key]; !seen {
				byDOB[key] = entry.Coordinator
			}
		}
	}

	for _, rec := range records {
		if rec.InsuredID != "" {
			if name, ok := byMedicaidID[rec.InsuredID]; ok && name != "" {
				rec.Coordinator = name
				continue
			}
		}
		if rec.DOB != nil {
			if name, ok := byDOB[dobKey(*rec.DOB)]; ok {
				rec.Coordinator = name
			}
		}
	}
}
