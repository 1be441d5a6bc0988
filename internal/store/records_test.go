package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/storage"
)

func newTestRecordStore(t *testing.T) (*RecordStore, *storage.MemoryStore) {
	t.Helper()
	st := storage.NewMemoryStore()
	records, err := NewRecordStore(st)
	require.NoError(t, err)
	return records, st
}

func TestHydrationSeedsDemoData(t *testing.T) {
	records, st := newTestRecordStore(t)

	patients := records.Patients()
	require.Len(t, patients, 2)
	assert.Equal(t, "p1", patients[0].ID)
	assert.Equal(t, "AnilReddy", patients[0].Name)
	assert.Equal(t, "p2", patients[1].ID)

	incidents := records.Incidents()
	require.Len(t, incidents, 3)
	assert.Equal(t, "i1", incidents[0].ID)
	assert.Equal(t, models.StatusCompleted, incidents[1].Status)

	// Seeding writes through to the persistence medium immediately.
	_, err := st.Read(KeyPatients)
	assert.NoError(t, err)
	_, err = st.Read(KeyIncidents)
	assert.NoError(t, err)
}

func TestAddPatientAssignsDistinctIDs(t *testing.T) {
	records, _ := newTestRecordStore(t)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		p, err := records.AddPatient(models.Patient{Name: "X"})
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestUpdatePatientTouchesOnlyPatchedFields(t *testing.T) {
	records, _ := newTestRecordStore(t)

	name := "X"
	found, err := records.UpdatePatient("p1", models.PatientPatch{Name: &name})
	require.NoError(t, err)
	require.True(t, found)

	patient, ok := records.Patient("p1")
	require.True(t, ok)
	assert.Equal(t, "X", patient.Name)
	assert.Equal(t, "2001-05-10", patient.DOB)
	assert.Equal(t, "8767854321", patient.Contact)
	assert.Equal(t, "anil@entnt.in", patient.Email)
	assert.Equal(t, "No allergies", patient.HealthInfo)
	assert.Equal(t, "btm, bangalore", patient.Address)
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	records, _ := newTestRecordStore(t)
	before := records.Patients()

	name := "X"
	found, err := records.UpdatePatient("no-such-id", models.PatientPatch{Name: &name})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, before, records.Patients())

	found, err = records.UpdateIncident("no-such-id", models.IncidentPatch{Title: &name})
	require.NoError(t, err)
	assert.False(t, found)

	found, err = records.DeletePatient("no-such-id")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = records.DeleteIncident("no-such-id")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeletePatientCascadesIncidents(t *testing.T) {
	records, _ := newTestRecordStore(t)

	_, err := records.AddIncident(models.Incident{
		PatientID:       "p1",
		Title:           "Follow-up",
		AppointmentDate: "2025-01-01T10:00:00",
		Status:          models.StatusScheduled,
	})
	require.NoError(t, err)
	require.Len(t, records.PatientIncidents("p1"), 3)

	found, err := records.DeletePatient("p1")
	require.NoError(t, err)
	require.True(t, found)

	_, ok := records.Patient("p1")
	assert.False(t, ok)
	assert.Empty(t, records.PatientIncidents("p1"))
	for _, in := range records.Incidents() {
		assert.NotEqual(t, "p1", in.PatientID)
	}

	// p2's incidents are untouched.
	assert.Len(t, records.PatientIncidents("p2"), 1)
}

func TestPatientIncidentsIsIdempotent(t *testing.T) {
	records, _ := newTestRecordStore(t)

	first := records.PatientIncidents("p1")
	second := records.PatientIncidents("p1")
	assert.Equal(t, first, second)
	require.Len(t, first, 2)

	// Returned snapshots never alias store state.
	first[0].Title = "mutated"
	fresh := records.PatientIncidents("p1")
	assert.Equal(t, "Routine Cleaning", fresh[0].Title)
}

func TestPersistRoundTrip(t *testing.T) {
	st := storage.NewMemoryStore()
	records, err := NewRecordStore(st)
	require.NoError(t, err)

	cost := 99.5
	_, err = records.AddPatient(models.Patient{Name: "New Patient", DOB: "1990-01-01"})
	require.NoError(t, err)
	_, err = records.AddIncident(models.Incident{
		PatientID:       "p2",
		Title:           "Filling",
		AppointmentDate: "2025-08-01T09:30:00",
		Cost:            &cost,
		Status:          models.StatusPending,
		Files: []models.FileAttachment{
			{Name: "xray.png", URL: "data:image/png;base64,aGVsbG8=", Type: "image/png"},
		},
	})
	require.NoError(t, err)

	rehydrated, err := NewRecordStore(st)
	require.NoError(t, err)
	assert.Equal(t, records.Patients(), rehydrated.Patients())
	assert.Equal(t, records.Incidents(), rehydrated.Incidents())
}

func TestMalformedCollectionIsReseeded(t *testing.T) {
	st := storage.NewMemoryStore()
	require.NoError(t, st.Write(KeyPatients, []byte("{not json")))
	require.NoError(t, st.Write(KeyIncidents, []byte("also not json")))

	records, err := NewRecordStore(st)
	require.NoError(t, err)
	assert.Len(t, records.Patients(), 2)
	assert.Len(t, records.Incidents(), 3)

	// The reset state is persisted, so the next hydration is clean.
	raw, err := st.Read(KeyPatients)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"p1","name":"AnilReddy","dob":"2001-05-10","contact":"8767854321","email":"anil@entnt.in","healthInfo":"No allergies","address":"btm, bangalore"},
		{"id":"p2","name":"reshu","dob":"1985-08-15","contact":"9877865091","email":"reshu@entnt.in","healthInfo":"Allergic to penicillin","address":"nagavara, bangalore"}
	]`, string(raw))
}

func TestIncidentFileAppendAndRemoveByIndex(t *testing.T) {
	records, _ := newTestRecordStore(t)

	a := models.FileAttachment{Name: "a.pdf", URL: "data:application/pdf;base64,YQ==", Type: "application/pdf"}
	b := models.FileAttachment{Name: "b.pdf", URL: "data:application/pdf;base64,Yg==", Type: "application/pdf"}
	c := models.FileAttachment{Name: "c.pdf", URL: "data:application/pdf;base64,Yw==", Type: "application/pdf"}

	for _, f := range []models.FileAttachment{a, b, c} {
		_, found, err := records.AddIncidentFile("i1", f)
		require.NoError(t, err)
		require.True(t, found)
	}

	incident, ok := records.Incident("i1")
	require.True(t, ok)
	assert.Equal(t, []models.FileAttachment{a, b, c}, incident.Files)

	incident, found, err := records.RemoveIncidentFile("i1", 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []models.FileAttachment{a, c}, incident.Files)

	// Out-of-range index is a no-op signalled by found == false.
	_, found, err = records.RemoveIncidentFile("i1", 5)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = records.RemoveIncidentFile("i1", -1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAddIncidentNormalizesNilFiles(t *testing.T) {
	records, _ := newTestRecordStore(t)

	created, err := records.AddIncident(models.Incident{
		PatientID:       "p1",
		Title:           "Checkup",
		AppointmentDate: "2025-09-01T10:00:00",
		Status:          models.StatusScheduled,
	})
	require.NoError(t, err)
	assert.NotNil(t, created.Files)
	assert.Empty(t, created.Files)
}
