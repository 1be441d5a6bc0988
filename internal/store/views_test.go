package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-clinic-server/internal/models"
)

func incident(id, patientID, date string, status models.IncidentStatus, cost *float64) models.Incident {
	return models.Incident{
		ID:              id,
		PatientID:       patientID,
		AppointmentDate: date,
		Status:          status,
		Cost:            cost,
		Files:           []models.FileAttachment{},
	}
}

func costOf(v float64) *float64 { return &v }

func TestComputeStats(t *testing.T) {
	patients := []models.Patient{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}
	incidents := []models.Incident{
		incident("i1", "p1", "2025-07-08T10:00:00", models.StatusScheduled, costOf(120)),
		incident("i2", "p1", "2025-07-01T10:00:00", models.StatusCompleted, costOf(280)),
		incident("i3", "p2", "2025-07-10T15:00:00", models.StatusScheduled, nil),
		incident("i4", "p2", "2025-07-12T15:00:00", models.StatusPending, costOf(50)),
		incident("i5", "p3", "2025-07-14T15:00:00", models.StatusCancelled, costOf(10)),
	}

	stats := ComputeStats(patients, incidents)
	assert.Equal(t, 3, stats.TotalPatients)
	assert.Equal(t, 5, stats.TotalIncidents)
	assert.Equal(t, 460.0, stats.TotalRevenue)
	assert.Equal(t, 1, stats.CompletedTreatments)
	assert.Equal(t, 3, stats.PendingTreatments)
	assert.Equal(t, map[models.IncidentStatus]int{
		models.StatusScheduled: 2,
		models.StatusCompleted: 1,
		models.StatusPending:   1,
		models.StatusCancelled: 1,
	}, stats.ByStatus)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, nil)
	assert.Equal(t, 0, stats.TotalPatients)
	assert.Equal(t, 0.0, stats.TotalRevenue)
	assert.Empty(t, stats.ByStatus)
}

func TestUpcomingAppointments(t *testing.T) {
	now := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)
	incidents := []models.Incident{
		incident("past", "p1", "2025-07-01T10:00:00", models.StatusScheduled, nil),
		incident("later", "p1", "2025-07-20T10:00:00", models.StatusScheduled, nil),
		incident("completed", "p1", "2025-07-09T10:00:00", models.StatusCompleted, nil),
		incident("soon", "p2", "2025-07-08T10:00:00", models.StatusScheduled, nil),
		incident("unparseable", "p2", "whenever", models.StatusScheduled, nil),
	}

	upcoming := UpcomingAppointments(incidents, now, 10)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "soon", upcoming[0].ID)
	assert.Equal(t, "later", upcoming[1].ID)

	// Strictly after now: an appointment at the cutoff itself is excluded.
	cutoff := time.Date(2025, 7, 8, 10, 0, 0, 0, time.UTC)
	assert.Len(t, UpcomingAppointments(incidents, cutoff, 10), 1)

	// Top-N truncation
	assert.Len(t, UpcomingAppointments(incidents, now, 1), 1)
	assert.Empty(t, UpcomingAppointments(incidents, now, 0))
}

func TestTopPatientsStableTieBreak(t *testing.T) {
	patients := []models.Patient{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}
	incidents := []models.Incident{
		incident("i1", "p2", "2025-07-01T10:00:00", models.StatusCompleted, costOf(100)),
		incident("i2", "p3", "2025-07-02T10:00:00", models.StatusCompleted, costOf(40)),
		incident("i3", "p3", "2025-07-03T10:00:00", models.StatusScheduled, costOf(60)),
		incident("i4", "p1", "2025-07-04T10:00:00", models.StatusScheduled, nil),
	}

	ranked := TopPatients(patients, incidents, 5)
	require.Len(t, ranked, 3)
	assert.Equal(t, "p3", ranked[0].ID)
	assert.Equal(t, 2, ranked[0].Visits)
	assert.Equal(t, 100.0, ranked[0].TotalSpent)

	// p1 and p2 both have one visit; collection order decides.
	assert.Equal(t, "p1", ranked[1].ID)
	assert.Equal(t, "p2", ranked[2].ID)
	assert.Equal(t, 0.0, ranked[1].TotalSpent)

	assert.Len(t, TopPatients(patients, incidents, 2), 2)
}

func TestMonthIncidentsSplitsByCalendarMonth(t *testing.T) {
	incidents := []models.Incident{
		incident("july", "p1", "2025-07-08T10:00:00", models.StatusScheduled, nil),
		incident("august", "p1", "2025-08-08T10:00:00", models.StatusScheduled, nil),
		incident("july-again", "p2", "2025-07-30T09:00:00", models.StatusCompleted, nil),
		incident("last-year", "p2", "2024-07-30T09:00:00", models.StatusCompleted, nil),
	}

	july := MonthIncidents(incidents, 2025, time.July)
	require.Len(t, july, 2)
	assert.Equal(t, "july", july[0].ID)
	assert.Equal(t, "july-again", july[1].ID)

	august := MonthIncidents(incidents, 2025, time.August)
	require.Len(t, august, 1)
	assert.Equal(t, "august", august[0].ID)

	assert.Empty(t, MonthIncidents(incidents, 2025, time.June))
}

func TestCalendarDaysBucketsByDay(t *testing.T) {
	incidents := []models.Incident{
		incident("a", "p1", "2025-07-08T10:00:00", models.StatusScheduled, nil),
		incident("b", "p2", "2025-07-08T15:00:00", models.StatusPending, nil),
		incident("c", "p2", "2025-07-21T09:00:00", models.StatusScheduled, nil),
		incident("other-month", "p1", "2025-06-08T10:00:00", models.StatusScheduled, nil),
	}

	days := CalendarDays(incidents, 2025, time.July)
	require.Len(t, days, 2)
	require.Len(t, days[8], 2)
	assert.Equal(t, "a", days[8][0].ID)
	assert.Equal(t, "b", days[8][1].ID)
	require.Len(t, days[21], 1)
	assert.Equal(t, "c", days[21][0].ID)
}

func TestParseAppointmentDateLayouts(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"2025-07-08T10:00:00", true},
		{"2025-07-08T10:00:00Z", true},
		{"2025-07-08T10:00:00+05:30", true},
		{"2025-07-08", true},
		{"08/07/2025", false},
		{"", false},
	}
	for _, tc := range cases {
		_, ok := parseAppointmentDate(tc.value)
		assert.Equal(t, tc.ok, ok, "value %q", tc.value)
	}
}
