package store

import (
	"sort"
	"time"

	"dental-clinic-server/internal/models"
)

// Derived views over record store snapshots. All pure functions: computed on
// demand from the slices they are handed, never cached, never mutating.

// Stats is the dashboard KPI aggregation.
type Stats struct {
	TotalPatients       int                            `json:"totalPatients"`
	TotalIncidents      int                            `json:"totalIncidents"`
	TotalRevenue        float64                        `json:"totalRevenue"`
	ByStatus            map[models.IncidentStatus]int  `json:"byStatus"`
	CompletedTreatments int                            `json:"completedTreatments"`
	PendingTreatments   int                            `json:"pendingTreatments"`
}

// PatientVisits is a patient annotated with visit count and total spend for
// the top-patients ranking.
type PatientVisits struct {
	models.Patient
	Visits     int     `json:"visits"`
	TotalSpent float64 `json:"totalSpent"`
}

// Incident dates arrive as ISO strings straight from clients. Views parse
// them leniently; records whose date cannot be parsed simply drop out of
// time-based views instead of breaking them.
var appointmentDateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func parseAppointmentDate(value string) (time.Time, bool) {
	for _, layout := range appointmentDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ComputeStats aggregates the KPI counters shown on the admin dashboard.
// Incidents without a recorded cost contribute zero to revenue. Pending
// treatments counts both Scheduled and Pending incidents, matching the
// dashboard's definition of work still to be done.
func ComputeStats(patients []models.Patient, incidents []models.Incident) Stats {
	stats := Stats{
		TotalPatients:  len(patients),
		TotalIncidents: len(incidents),
		ByStatus:       map[models.IncidentStatus]int{},
	}
	for _, in := range incidents {
		stats.TotalRevenue += in.CostValue()
		stats.ByStatus[in.Status]++
	}
	stats.CompletedTreatments = stats.ByStatus[models.StatusCompleted]
	stats.PendingTreatments = stats.ByStatus[models.StatusScheduled] + stats.ByStatus[models.StatusPending]
	return stats
}

// UpcomingAppointments returns the next limit scheduled incidents strictly
// after now, ascending by appointment date.
func UpcomingAppointments(incidents []models.Incident, now time.Time, limit int) []models.Incident {
	type dated struct {
		incident models.Incident
		at       time.Time
	}
	upcoming := []dated{}
	for _, in := range incidents {
		if in.Status != models.StatusScheduled {
			continue
		}
		at, ok := parseAppointmentDate(in.AppointmentDate)
		if !ok || !at.After(now) {
			continue
		}
		upcoming = append(upcoming, dated{incident: in, at: at})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].at.Before(upcoming[j].at)
	})
	if limit >= 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	out := make([]models.Incident, len(upcoming))
	for i, d := range upcoming {
		out[i] = d.incident
	}
	return out
}

// TopPatients ranks patients by visit count, descending. Ties keep the
// original collection order (stable sort). Each entry carries the patient's
// total spend across all their incidents.
func TopPatients(patients []models.Patient, incidents []models.Incident, limit int) []PatientVisits {
	ranked := make([]PatientVisits, len(patients))
	for i, p := range patients {
		entry := PatientVisits{Patient: p}
		for _, in := range incidents {
			if in.PatientID == p.ID {
				entry.Visits++
				entry.TotalSpent += in.CostValue()
			}
		}
		ranked[i] = entry
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Visits > ranked[j].Visits
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// MonthIncidents returns the incidents whose appointment date falls within
// the given calendar month, in collection order.
func MonthIncidents(incidents []models.Incident, year int, month time.Month) []models.Incident {
	matches := []models.Incident{}
	for _, in := range incidents {
		at, ok := parseAppointmentDate(in.AppointmentDate)
		if ok && at.Year() == year && at.Month() == month {
			matches = append(matches, in)
		}
	}
	return matches
}

// CalendarDays buckets a month's incidents by day of month for the calendar
// grid. Days without appointments have no entry.
func CalendarDays(incidents []models.Incident, year int, month time.Month) map[int][]models.Incident {
	days := map[int][]models.Incident{}
	for _, in := range MonthIncidents(incidents, year, month) {
		at, _ := parseAppointmentDate(in.AppointmentDate)
		days[at.Day()] = append(days[at.Day()], in)
	}
	return days
}
